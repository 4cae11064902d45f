package cmd

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/signupboard/internal/domain"
	"github.com/nfrund/signupboard/internal/testutils"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestListCmd(t *testing.T) {
	srv := testutils.NewActivitiesServer(t, testutils.DefaultActivities)

	t.Run("all activities in order", func(t *testing.T) {
		out, _, err := run(t, "list", "--api", srv.URL)
		require.NoError(t, err)

		assert.Contains(t, out, "[1 spot available]")
		assert.Contains(t, out, "[20 spots available]")
		assert.Contains(t, out, "- michael@mergington.edu")
		assert.Contains(t, out, "No participants yet.")
		assert.Less(t, strings.Index(out, "Chess Club"), strings.Index(out, "Programming Class"))
	})

	t.Run("single activity", func(t *testing.T) {
		out, _, err := run(t, "list", "--api", srv.URL, "--activity", "Programming Class")
		require.NoError(t, err)
		assert.Contains(t, out, "Programming Class")
		assert.NotContains(t, out, "Chess Club")
	})

	t.Run("unknown activity", func(t *testing.T) {
		_, _, err := run(t, "list", "--api", srv.URL, "--activity", "Drama")
		require.ErrorIs(t, err, domain.ErrActivityNotFound)
	})

	t.Run("service failure", func(t *testing.T) {
		broken := testutils.NewActivitiesServer(t, testutils.DefaultActivities)
		broken.FailList(http.StatusInternalServerError)

		_, stderr, err := run(t, "list", "--api", broken.URL)
		require.Error(t, err)
		assert.Contains(t, stderr, "Could not load activities: Failed to load activities (HTTP 500)")
	})
}

func TestSignupCmd(t *testing.T) {
	srv := testutils.NewActivitiesServer(t, testutils.DefaultActivities)

	out, _, err := run(t, "signup", "--api", srv.URL, "--email", "b@x.com", "--activity", "Chess Club")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed up b@x.com for Chess Club")
	assert.Equal(t, []testutils.Request{{Method: http.MethodPost, Activity: "Chess Club", Email: "b@x.com"}}, srv.Requests())

	_, stderr, err := run(t, "signup", "--api", srv.URL, "--email", "b@x.com", "--activity", "Chess Club")
	require.Error(t, err)
	assert.Contains(t, stderr, "Student already signed up for this activity")
}

func TestSignupCmd_MissingInput(t *testing.T) {
	srv := testutils.NewActivitiesServer(t, testutils.DefaultActivities)

	_, stderr, err := run(t, "signup", "--api", srv.URL, "--activity", "Chess Club")
	require.Error(t, err)
	assert.Contains(t, stderr, "Please enter your email and select an activity.")
	assert.Empty(t, srv.Requests())
}

func TestRemoveCmd(t *testing.T) {
	srv := testutils.NewActivitiesServer(t, testutils.DefaultActivities)

	out, _, err := run(t, "remove", "--api", srv.URL, "-e", "michael@mergington.edu", "-a", "Chess Club")
	require.NoError(t, err)
	assert.Contains(t, out, "Unregistered michael@mergington.edu from Chess Club")
	assert.Empty(t, srv.Participants("Chess Club"))

	_, stderr, err := run(t, "remove", "--api", srv.URL, "-e", "michael@mergington.edu", "-a", "Chess Club")
	require.Error(t, err)
	assert.Contains(t, stderr, "Student is not signed up for this activity")
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "board-cli dev\n", out)
}
