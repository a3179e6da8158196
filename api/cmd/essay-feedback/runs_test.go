package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-feedback/api/internal/feedback"
)

type fakeLister struct {
	runs  []feedback.Run
	err   error
	row   string
	limit int
}

func (f *fakeLister) Recent(_ context.Context, rowPageID string, limit int) ([]feedback.Run, error) {
	f.row, f.limit = rowPageID, limit
	return f.runs, f.err
}

func TestListRuns(t *testing.T) {
	repo := &fakeLister{runs: []feedback.Run{{
		TextPageID: "text-1", RowPageID: "row-1", Engine: "groq", Model: "mixtral-8x7b-32768",
		Degraded: true, WriteStatus: 200, WriteOK: true,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}}
	var out bytes.Buffer

	require.NoError(t, listRuns(context.Background(), repo, "row-1", 5, &out))

	assert.Equal(t, "row-1", repo.row)
	assert.Equal(t, 5, repo.limit)
	assert.Equal(t, "2024-03-01T12:00:00Z  text=text-1 engine=groq model=mixtral-8x7b-32768 degraded=true write_status=200 write_ok=true\n", out.String())
}

func TestListRuns_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listRuns(context.Background(), &fakeLister{}, "row-9", 10, &out))
	assert.Equal(t, "no runs for row row-9\n", out.String())
}

func TestListRuns_Error(t *testing.T) {
	err := listRuns(context.Background(), &fakeLister{err: errors.New("conn refused")}, "row-1", 10, &bytes.Buffer{})
	assert.ErrorContains(t, err, "list runs: conn refused")
}

func TestRunsCmd_RequiresRow(t *testing.T) {
	root := rootCmd()
	root.SetArgs([]string{"runs"})
	root.SetOut(&bytes.Buffer{})

	assert.EqualError(t, root.Execute(), "--row-page-id is required")
}
