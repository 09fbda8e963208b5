package scanner

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/notify"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/AbdullahHad/WaadFinal/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunCycle_AgainstDatabase drives a cycle through the gorm store into a live hub subscription.
func TestRunCycle_AgainstDatabase(t *testing.T) {
	db := testutil.NewDB(t)
	log := zerolog.Nop()

	employee := testutil.CreateEmployee(t, db, "u1@example.com", models.RoleEmployee)
	due := at("2024-01-01T09:00:00Z")
	now := at("2024-01-02T00:00:00Z")

	renew := testutil.CreateCommitment(t, db, "Renew contract", due, models.CommitmentStatusPending, &employee.ID)
	done := testutil.CreateCommitment(t, db, "Signed", due, models.CommitmentStatusCompleted, &employee.ID)
	later := testutil.CreateCommitment(t, db, "Next quarter", now.Add(24*time.Hour), models.CommitmentStatusPending, &employee.ID)
	unassigned := testutil.CreateCommitment(t, db, "Unclaimed lead", due, models.CommitmentStatusPending, nil)

	hub := notify.NewHub(4, log)
	sub := hub.Subscribe(strconv.FormatUint(employee.ID, 10))
	defer sub.Close()

	repo := repository.NewCommitmentRepository(db)
	scanner := New(repo, NewDispatcher(hub, log), log)

	result, err := scanner.RunCycle(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Matched: 2, Updated: 2, Notified: 1}, result)

	reload := func(id uint64) models.Commitment {
		var c models.Commitment
		require.NoError(t, db.First(&c, id).Error)
		return c
	}
	assert.Equal(t, models.CommitmentStatusOverdue, reload(renew.ID).Status)
	assert.Equal(t, models.CommitmentStatusOverdue, reload(unassigned.ID).Status)
	assert.Equal(t, models.CommitmentStatusCompleted, reload(done.ID).Status)
	assert.Equal(t, models.CommitmentStatusPending, reload(later.ID).Status)

	alerts := repository.NewAlertRepository(db)
	renewAlerts, err := alerts.ListByCommitment(renew.ID)
	require.NoError(t, err)
	require.Len(t, renewAlerts, 1)
	assert.Equal(t, "SYSTEM: Commitment 'Renew contract' is now OVERDUE.", renewAlerts[0].Message)
	assert.Equal(t, models.AlertStatusNew, renewAlerts[0].Status)
	assert.True(t, renewAlerts[0].CreatedAt.Equal(now))

	unassignedAlerts, err := alerts.ListByCommitment(unassigned.ID)
	require.NoError(t, err)
	assert.Len(t, unassignedAlerts, 1)

	for _, id := range []uint64{done.ID, later.ID} {
		untouched, err := alerts.ListByCommitment(id)
		require.NoError(t, err)
		assert.Empty(t, untouched)
	}

	select {
	case ev := <-sub.Events():
		assert.Equal(t, "ReceiveNotification", ev.Name)
		assert.Contains(t, ev.Payload, "Renew contract")
		assert.Contains(t, ev.Payload, "overdue")
	default:
		t.Fatal("expected a notification for the owner")
	}

	second, err := scanner.RunCycle(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, CycleResult{}, second)

	renewAlerts, err = alerts.ListByCommitment(renew.ID)
	require.NoError(t, err)
	assert.Len(t, renewAlerts, 1)
}

func TestRunCycle_DueDatesInOtherZones(t *testing.T) {
	db := testutil.NewDB(t)
	log := zerolog.Nop()

	employee := testutil.CreateEmployee(t, db, "u1@example.com", models.RoleEmployee)
	tokyo := time.FixedZone("JST", 9*60*60)
	newYork := time.FixedZone("EST", -5*60*60)

	// 01:00Z and 15:00Z respectively
	early := testutil.CreateCommitment(t, db, "Call Osaka office", time.Date(2024, 1, 1, 10, 0, 0, 0, tokyo), models.CommitmentStatusPending, &employee.ID)
	late := testutil.CreateCommitment(t, db, "Call Boston office", time.Date(2024, 1, 1, 10, 0, 0, 0, newYork), models.CommitmentStatusPending, &employee.ID)

	repo := repository.NewCommitmentRepository(db)
	scanner := New(repo, NewDispatcher(notify.NewHub(1, log), log), log)

	reload := func(id uint64) models.CommitmentStatus {
		var c models.Commitment
		require.NoError(t, db.First(&c, id).Error)
		return c.Status
	}

	result, err := scanner.RunCycle(context.Background(), at("2024-01-01T05:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, models.CommitmentStatusOverdue, reload(early.ID))
	assert.Equal(t, models.CommitmentStatusPending, reload(late.ID))

	// 12:00Z read in Tokyo is 21:00+09:00, still before Boston's deadline
	result, err = scanner.RunCycle(context.Background(), at("2024-01-01T12:00:00Z").In(tokyo))
	require.NoError(t, err)
	assert.Equal(t, CycleResult{}, result)
	assert.Equal(t, models.CommitmentStatusPending, reload(late.ID))

	result, err = scanner.RunCycle(context.Background(), at("2024-01-01T15:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, models.CommitmentStatusOverdue, reload(late.ID))
}
