package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/driftroom/backend/database"
	"github.com/driftroom/backend/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.File{}, &models.Message{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
}

func TestSweepPurgesExpiredRoomsAndFiles(t *testing.T) {
	setupTestDB(t)

	expiredRoom, err := database.CreateRoom("expired", 1, "")
	require.NoError(t, err)
	aliveRoom, err := database.CreateRoom("alive", 24, "")
	require.NoError(t, err)

	expiredFile, err := database.CreateFile(aliveRoom.ID, "old.pdf", 1, "application/pdf", "blob1", "", 0)
	require.NoError(t, err)

	require.NoError(t, database.DB.Model(&models.Room{}).Where("id = ?", expiredRoom.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)
	require.NoError(t, database.DB.Model(&models.File{}).Where("id = ?", expiredFile.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	Sweep()

	_, err = database.GetRoom(expiredRoom.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = database.GetFile(expiredFile.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = database.GetRoom(aliveRoom.ID)
	require.NoError(t, err)

	// Running again with nothing to do is a no-op.
	Sweep()
	_, err = database.GetRoom(aliveRoom.ID)
	require.NoError(t, err)
}

func TestSweeperRunsOnSchedule(t *testing.T) {
	setupTestDB(t)

	room, err := database.CreateRoom("expired", 1, "")
	require.NoError(t, err)
	require.NoError(t, database.DB.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	sweeper := NewSweeper(20 * time.Millisecond)
	sweeper.Start()

	require.Eventually(t, func() bool {
		_, err := database.GetRoom(room.ID)
		return err != nil
	}, time.Second, 10*time.Millisecond)

	sweeper.Stop()
}

func TestSweeperStopTerminates(t *testing.T) {
	setupTestDB(t)

	sweeper := NewSweeper(time.Hour)
	sweeper.Start()

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return")
	}
}
