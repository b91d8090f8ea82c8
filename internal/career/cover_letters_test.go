package career

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverLetter_CreateDraftWithoutWriter(t *testing.T) {
	svc := NewCoverLetterService(newMemStore(), nil)

	letter, err := svc.Create(context.Background(), ada, &types.CreateCoverLetterRequest{JobTitle: "Engineer", CompanyName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, types.CoverLetterDraft, letter.Status)
	assert.Empty(t, letter.Content)
}

func TestCoverLetter_CreateGeneratesContent(t *testing.T) {
	store := newMemStore()
	writer := &fakeWriter{text: "  Dear Acme team,\n\nI am excited...  "}
	svc := NewCoverLetterService(store, writer)

	letter, err := svc.Create(context.Background(), ada, &types.CreateCoverLetterRequest{
		JobTitle:       "Engineer",
		CompanyName:    "Acme",
		JobDescription: "Build APIs",
	})
	require.NoError(t, err)
	assert.Equal(t, types.CoverLetterCompleted, letter.Status)
	assert.Equal(t, "Dear Acme team,\n\nI am excited...", letter.Content)
	assert.Contains(t, writer.prompt, "Engineer position at Acme")
	assert.Contains(t, writer.prompt, "Build APIs")
}

func TestCoverLetter_CreateValidation(t *testing.T) {
	svc := NewCoverLetterService(newMemStore(), nil)

	_, err := svc.Create(context.Background(), ada, &types.CreateCoverLetterRequest{JobTitle: "Engineer"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCoverLetter_UpdateRejectsEmptyContent(t *testing.T) {
	svc := NewCoverLetterService(newMemStore(), nil)

	_, err := svc.Update(context.Background(), ada, uuid.New(), "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Content cannot be empty", err.Error())
}

func TestCoverLetter_ScopedToOwner(t *testing.T) {
	store := newMemStore()
	svc := NewCoverLetterService(store, nil)
	eve := &types.Identity{Subject: "user_eve"}

	letter, err := svc.Create(context.Background(), ada, &types.CreateCoverLetterRequest{JobTitle: "Engineer", CompanyName: "Acme", Content: "Hi"})
	require.NoError(t, err)

	var nf *NotFoundError
	_, err = svc.Get(context.Background(), eve, letter.ID)
	assert.ErrorAs(t, err, &nf)
	_, err = svc.Update(context.Background(), eve, letter.ID, "mine now")
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, svc.Delete(context.Background(), eve, letter.ID), &nf)

	list, err := svc.List(context.Background(), eve)
	require.NoError(t, err)
	assert.Empty(t, list)

	updated, err := svc.Update(context.Background(), ada, letter.ID, "Dear Acme,")
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme,", updated.Content)

	require.NoError(t, svc.Delete(context.Background(), ada, letter.ID))
	_, err = svc.Get(context.Background(), ada, letter.ID)
	assert.ErrorAs(t, err, &nf)
}
