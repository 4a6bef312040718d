package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/commands"
	"taskman/internal/service"
	"taskman/internal/testutil"
)

// displayed loads every task of svc matching the session filter into the
// session, as a redisplay would.
func displayed(t *testing.T, sess *commands.Session, svc *testutil.FakeStore) {
	t.Helper()
	tasks, err := service.GetTasks(context.Background(), svc, sess.Filter)
	require.NoError(t, err)
	sess.Tasks = tasks
}

// runCommand is a helper to run a command by code with a FakeStore.
func runCommand(t *testing.T, sess *commands.Session, svc *testutil.FakeStore, code string, args ...string) (commands.Result, string) {
	t.Helper()

	cmd, ok := commands.DefaultRegistry.Find(code)
	require.True(t, ok, "command %q not registered", code)
	require.Len(t, args, cmd.Arity()-1, "wrong number of args for %q", code)

	var out bytes.Buffer
	res := cmd.Run(context.Background(), sess, svc, args, &out)
	return res, out.String()
}

func newFixture(t *testing.T) (*commands.Session, *testutil.FakeStore) {
	t.Helper()
	svc := testutil.NewFakeStore()
	svc.AddTask("t1", "work", "write report", true)
	svc.AddTask("t2", "home", "paint fence", true)
	svc.AddTask("t3", "work", "file expenses", false)

	sess := commands.NewSession()
	displayed(t, sess, svc)
	return sess, svc
}

func TestDefaultRegistry_Codes(t *testing.T) {
	want := map[string]int{"c": 2, "d": 2, "h": 1, "i": 3, "o": 2, "q": 3, "u": 4, "x": 1}

	all := commands.DefaultRegistry.All()
	require.Len(t, all, len(want))
	for _, cmd := range all {
		arity, ok := want[cmd.Name()]
		require.True(t, ok, "unexpected command %q", cmd.Name())
		assert.Equal(t, arity, cmd.Arity(), "arity of %q", cmd.Name())
		assert.NotEmpty(t, cmd.Usage())
		assert.NotEmpty(t, cmd.Synopsis())
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.HelpCmd{}))
	err := r.Register(&commands.HelpCmd{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered: h")

	_, ok := r.Find("q")
	assert.False(t, ok)
}

func TestHelpCommand(t *testing.T) {
	sess, svc := newFixture(t)

	res, out := runCommand(t, sess, svc, "h")

	assert.False(t, res.Failed())
	assert.Equal(t, commands.Hold, res.Outcome)
	assert.Contains(t, out, "q,<o|c|a>,<category|*> - query (o=open, c=closed, a=all)\n")
	assert.Contains(t, out, "u,<id>,<category>,<description> - update\n")
	assert.Contains(t, out, "x - exit\n")
}

func TestQueryCommand(t *testing.T) {
	cases := []struct {
		name         string
		status       string
		category     string
		wantStatus   *bool
		wantCategory *string
	}{
		{"open all", "o", "*", boolPtr(true), nil},
		{"closed work", "c", "work", boolPtr(false), strPtr("work")},
		{"all home", "a", "home", nil, strPtr("home")},
		{"unknown status means all", "z", "*", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, svc := newFixture(t)
			before := len(svc.Calls)

			res, out := runCommand(t, sess, svc, "q", tc.status, tc.category)

			assert.False(t, res.Failed())
			assert.Equal(t, commands.Continue, res.Outcome)
			assert.Empty(t, out)
			assert.Equal(t, tc.wantStatus, sess.Filter.Status)
			assert.Equal(t, tc.wantCategory, sess.Filter.Category)
			assert.Len(t, svc.Calls, before, "query must not touch the store")
		})
	}
}

func TestCloseCommand(t *testing.T) {
	sess, svc := newFixture(t)

	res, _ := runCommand(t, sess, svc, "c", "1")

	require.False(t, res.Failed(), "%v", res.Err)
	task, _ := svc.Task("t1")
	assert.False(t, task.Status)
	// The displayed list is not refreshed by the command itself.
	assert.True(t, sess.Tasks[0].Status)
}

func TestCloseCommand_AlreadyClosed(t *testing.T) {
	sess, svc := newFixture(t)
	sess.Filter = service.Filter{}
	displayed(t, sess, svc)

	for i := 0; i < 2; i++ {
		res, _ := runCommand(t, sess, svc, "c", "3")
		require.False(t, res.Failed(), "%v", res.Err)
	}
	task, _ := svc.Task("t3")
	assert.False(t, task.Status)
}

func TestOpenCommand(t *testing.T) {
	sess, svc := newFixture(t)
	sess.Filter = service.StatusFilter(false)
	displayed(t, sess, svc)

	res, _ := runCommand(t, sess, svc, "o", "1")

	require.False(t, res.Failed(), "%v", res.Err)
	task, _ := svc.Task("t3")
	assert.True(t, task.Status)
}

func TestInsertCommand(t *testing.T) {
	sess, svc := newFixture(t)

	res, _ := runCommand(t, sess, svc, "i", "errands", "buy milk")

	require.False(t, res.Failed(), "%v", res.Err)
	require.Equal(t, 4, svc.Len())

	open, err := service.GetTasks(context.Background(), svc, service.StatusFilter(true))
	require.NoError(t, err)
	last := open[len(open)-1]
	assert.Equal(t, "errands", last.Category)
	assert.Equal(t, "buy milk", last.Description)
	assert.True(t, last.Status)
	assert.NotContains(t, []string{"t1", "t2", "t3"}, last.ID)
}

func TestDeleteCommand(t *testing.T) {
	sess, svc := newFixture(t)

	res, _ := runCommand(t, sess, svc, "d", "2")

	require.False(t, res.Failed(), "%v", res.Err)
	_, found := svc.Task("t2")
	assert.False(t, found)
	assert.Equal(t, 2, svc.Len())
}

func TestUpdateCommand(t *testing.T) {
	sess, svc := newFixture(t)

	res, _ := runCommand(t, sess, svc, "u", "1", "home", "new desc")

	require.False(t, res.Failed(), "%v", res.Err)
	task, _ := svc.Task("t1")
	assert.Equal(t, "home", task.Category)
	assert.Equal(t, "new desc", task.Description)
	assert.True(t, task.Status, "status must be unchanged")
	assert.Equal(t, []string{"set t1 [category description]"}, svc.Calls, "one write for both fields")
}

func TestExitCommand(t *testing.T) {
	sess, svc := newFixture(t)

	res, _ := runCommand(t, sess, svc, "x")

	assert.False(t, res.Failed())
	assert.Equal(t, commands.Exit, res.Outcome)
}

func TestPositionalCommands_BadRef(t *testing.T) {
	cases := []struct {
		code string
		args []string
		want error
	}{
		{"c", []string{"0"}, commands.ErrTaskRefOutOfRange},
		{"c", []string{"-1"}, commands.ErrTaskRefOutOfRange},
		{"o", []string{"3"}, commands.ErrTaskRefOutOfRange},
		{"d", []string{"abc"}, commands.ErrInvalidTaskRef},
		{"d", []string{""}, commands.ErrInvalidTaskRef},
		{"u", []string{"99", "home", "x"}, commands.ErrTaskRefOutOfRange},
		{"u", []string{"1.0", "home", "x"}, commands.ErrInvalidTaskRef},
	}

	for _, tc := range cases {
		t.Run(tc.code+"_"+tc.args[0], func(t *testing.T) {
			sess, svc := newFixture(t)

			res, _ := runCommand(t, sess, svc, tc.code, tc.args...)

			require.True(t, res.Failed())
			assert.Equal(t, commands.KindBadRef, res.Kind)
			assert.Equal(t, commands.Continue, res.Outcome)
			assert.True(t, errors.Is(res.Err, tc.want), "got %v", res.Err)
			assert.Empty(t, svc.Calls, "no store call on a bad reference")
		})
	}
}

func TestCommands_StoreErrors(t *testing.T) {
	cases := []struct {
		code   string
		args   []string
		inject func(*testutil.FakeStore)
		op     string
	}{
		{"c", []string{"1"}, func(s *testutil.FakeStore) { s.SetFieldsErr = service.ErrPermission }, "set status"},
		{"o", []string{"1"}, func(s *testutil.FakeStore) { s.SetFieldsErr = service.ErrPermission }, "set status"},
		{"i", []string{"a", "b"}, func(s *testutil.FakeStore) { s.InsertErr = service.ErrPermission }, "insert"},
		{"d", []string{"1"}, func(s *testutil.FakeStore) { s.DeleteErr = service.ErrPermission }, "delete"},
		{"u", []string{"1", "a", "b"}, func(s *testutil.FakeStore) { s.SetFieldsErr = service.ErrPermission }, "update"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			sess, svc := newFixture(t)
			tc.inject(svc)

			res, _ := runCommand(t, sess, svc, tc.code, tc.args...)

			require.True(t, res.Failed())
			assert.Equal(t, commands.KindStore, res.Kind)
			assert.True(t, errors.Is(res.Err, service.ErrPermission))

			var se *commands.StoreError
			require.True(t, errors.As(res.Err, &se))
			assert.Equal(t, tc.op, se.Op)
		})
	}
}

func TestUpdateCommand_DeletedElsewhere(t *testing.T) {
	sess, svc := newFixture(t)
	require.NoError(t, svc.Delete(context.Background(), "t1"))

	res, _ := runCommand(t, sess, svc, "u", "1", "home", "x")

	require.True(t, res.Failed())
	assert.Equal(t, commands.KindStore, res.Kind)
	assert.True(t, errors.Is(res.Err, service.ErrNotFound))
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
