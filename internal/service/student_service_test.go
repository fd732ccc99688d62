package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/models"
)

func TestStudentServiceCreateAndConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.students.Create(ctx, dto.StudentCreateRequest{Code: " S-1 ", FullName: "<i>Ada</i> Lovelace"})
	require.NoError(t, err)
	require.Equal(t, "S-1", created.Code)
	require.Equal(t, "Ada Lovelace", created.FullName)

	_, err = f.students.Create(ctx, dto.StudentCreateRequest{Code: "S-1", FullName: "Someone"})
	require.ErrorIs(t, err, ErrStudentCodeTaken)

	_, err = f.students.Create(ctx, dto.StudentCreateRequest{Code: "", FullName: "Nobody"})
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindInvalid, kind)

	found, err := f.students.GetByCode(ctx, "S-1")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = f.students.Get(ctx, 999)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentServiceUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.students.Create(ctx, dto.StudentCreateRequest{Code: "S-1", FullName: "Ada"})
	require.NoError(t, err)
	second, err := f.students.Create(ctx, dto.StudentCreateRequest{Code: "S-2", FullName: "Grace"})
	require.NoError(t, err)

	_, err = f.students.Update(ctx, first.ID, dto.StudentUpdateRequest{})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)

	updated, err := f.students.Update(ctx, first.ID, dto.StudentUpdateRequest{FullName: stringPtr("Ada Lovelace")})
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", updated.FullName)
	require.Equal(t, "S-1", updated.Code)
	require.Contains(t, f.invalidator.ids, first.ID)

	_, err = f.students.Update(ctx, second.ID, dto.StudentUpdateRequest{Code: stringPtr("S-1")})
	require.ErrorIs(t, err, ErrStudentCodeTaken)

	_, err = f.students.Update(ctx, 999, dto.StudentUpdateRequest{Code: stringPtr("S-9")})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentServiceDeleteBlockedByEnrollment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student, _ := f.enrolledPair(t, "S-1")

	err := f.students.Delete(ctx, student.ID)
	require.ErrorIs(t, err, ErrStudentReferenced)
	require.Equal(t, int64(1), f.count(t, &models.Student{}))
	require.Equal(t, int64(1), f.count(t, &models.Enrollment{}))

	require.ErrorIs(t, f.students.Delete(ctx, 999), ErrStudentNotFound)
}
