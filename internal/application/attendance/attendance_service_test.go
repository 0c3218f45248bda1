package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

func newAttendanceFixture(t *testing.T) (*AttendanceService, *memoryAttendanceRepo, *recordingNotifier, *identity.Member) {
	t.Helper()
	records := newMemoryAttendanceRepo()
	members := newMemoryMemberRepo()
	notifier := &recordingNotifier{}
	member := testMember(t, "勤怠 太郎")
	require.NoError(t, members.Create(context.Background(), member))
	svc := NewAttendanceService(records, members, notifier, time.UTC, zap.NewNop())
	return svc, records, notifier, member
}

func at(t *testing.T, svc *AttendanceService, hour, min int) {
	t.Helper()
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 10, hour, min, 0, 0, time.UTC)
	}
}

func TestClockInAndOut(t *testing.T) {
	svc, _, notifier, member := newAttendanceFixture(t)
	ctx := context.Background()

	at(t, svc, 9, 0)
	record, err := svc.ClockIn(ctx, ClockInInput{
		MemberID: member.ID,
		Plan:     "API実装",
		Location: attendance.LocationRemote,
	})
	require.NoError(t, err)
	require.NotNil(t, record.ClockIn)
	assert.Equal(t, "API実装", record.PlanText)

	at(t, svc, 18, 0)
	record, err = svc.ClockOut(ctx, ClockOutInput{
		MemberID:     member.ID,
		BreakMinutes: 60,
		Done:         "API実装完了",
		Tomorrow:     "テスト",
	})
	require.NoError(t, err)
	assert.Equal(t, 480, record.WorkMinutes)
	assert.Equal(t, "API実装完了", record.DoneText)

	messages := notifier.all()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "勤怠 太郎")
	assert.Contains(t, messages[0], "出勤")
	assert.Contains(t, messages[1], "退勤")
}

func TestClockInTwiceKeepsFirstTime(t *testing.T) {
	svc, records, _, member := newAttendanceFixture(t)
	ctx := context.Background()

	at(t, svc, 9, 0)
	first, err := svc.ClockIn(ctx, ClockInInput{MemberID: member.ID, Plan: "朝の予定"})
	require.NoError(t, err)
	firstIn := *first.ClockIn

	at(t, svc, 10, 30)
	second, err := svc.ClockIn(ctx, ClockInInput{MemberID: member.ID, Plan: "変更後の予定"})
	require.NoError(t, err)

	assert.True(t, second.ClockIn.Equal(firstIn))
	assert.Equal(t, "朝の予定", second.PlanText)
	assert.Len(t, records.records, 1)
}

func TestMarkAbsent(t *testing.T) {
	t.Run("creates the day row when none exists", func(t *testing.T) {
		svc, records, _, member := newAttendanceFixture(t)
		ctx := context.Background()

		date := valueobject.NewDate(2025, time.June, 10)
		record, err := svc.MarkAbsent(ctx, MarkAbsentInput{MemberID: member.ID, Date: date})
		require.NoError(t, err)
		assert.Equal(t, attendance.RecordAbsent, record.Status)
		assert.Equal(t, attendance.DisplayAbsent, record.DisplayStatus())
		assert.Len(t, records.records, 1)
	})

	t.Run("discards recorded clock values", func(t *testing.T) {
		svc, _, _, member := newAttendanceFixture(t)
		ctx := context.Background()

		at(t, svc, 9, 0)
		record, err := svc.ClockIn(ctx, ClockInInput{MemberID: member.ID})
		require.NoError(t, err)

		record, err = svc.MarkAbsent(ctx, MarkAbsentInput{MemberID: member.ID, Date: record.Date})
		require.NoError(t, err)
		assert.Equal(t, attendance.RecordAbsent, record.Status)
		assert.Nil(t, record.ClockIn)
		assert.Equal(t, attendance.ConfirmUnconfirmed, record.ConfirmStatus)

		days, err := svc.Month(ctx, member.ID, record.Date.MonthOf())
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, attendance.DisplayAbsent, days[0].DisplayStatus)
	})
}

func TestClockOutWithoutClockIn(t *testing.T) {
	svc, _, _, member := newAttendanceFixture(t)
	at(t, svc, 18, 0)

	_, err := svc.ClockOut(context.Background(), ClockOutInput{MemberID: member.ID})
	assert.ErrorIs(t, err, shared.ErrNotClockedIn)
}

func TestCorrectResetsReviewState(t *testing.T) {
	svc, _, _, member := newAttendanceFixture(t)
	ctx := context.Background()

	at(t, svc, 9, 12)
	record, err := svc.ClockIn(ctx, ClockInInput{MemberID: member.ID})
	require.NoError(t, err)
	at(t, svc, 18, 3)
	record, err = svc.ClockOut(ctx, ClockOutInput{MemberID: member.ID, BreakMinutes: 60})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, ConfirmInput{AttendanceID: record.ID, Status: attendance.ConfirmApproved})
	require.NoError(t, err)

	clockIn := "09:00"
	clockOut := "18:00"
	corrected, err := svc.Correct(ctx, CorrectInput{
		AttendanceID: record.ID,
		ClockIn:      &clockIn,
		ClockOut:     &clockOut,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.RecordModified, corrected.Status)
	assert.Equal(t, attendance.ConfirmUnconfirmed, corrected.ConfirmStatus)
	assert.Equal(t, 480, corrected.WorkMinutes)
	// Corrected times land on the record's own date
	assert.Equal(t, 9, corrected.ClockIn.Hour())
	assert.Equal(t, 10, corrected.ClockIn.Day())
}

func TestCorrectRejectsBadTime(t *testing.T) {
	svc, _, _, member := newAttendanceFixture(t)
	ctx := context.Background()

	at(t, svc, 9, 0)
	record, err := svc.ClockIn(ctx, ClockInInput{MemberID: member.ID})
	require.NoError(t, err)

	bad := "25:99"
	_, err = svc.Correct(ctx, CorrectInput{AttendanceID: record.ID, ClockIn: &bad})
	require.Error(t, err)
}

func TestTodayAndMonth(t *testing.T) {
	svc, _, _, member := newAttendanceFixture(t)
	ctx := context.Background()

	at(t, svc, 9, 0)
	_, err := svc.ClockIn(ctx, ClockInInput{MemberID: member.ID})
	require.NoError(t, err)

	today, err := svc.Today(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, today.MemberID)

	month := today.Date.MonthOf()
	days, err := svc.Month(ctx, member.ID, month)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, attendance.DisplayWorking, days[0].DisplayStatus)
}
