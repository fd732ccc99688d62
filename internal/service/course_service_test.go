package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/dto"
)

func TestCourseServiceCodeUniquePerTerm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	spring, err := f.courses.Create(ctx, dto.CourseCreateRequest{Code: "MATH101", Name: "Algebra", Term: "2024A"})
	require.NoError(t, err)

	_, err = f.courses.Create(ctx, dto.CourseCreateRequest{Code: "MATH101", Name: "Algebra", Term: "2024A"})
	require.ErrorIs(t, err, ErrCourseExists)

	_, err = f.courses.Create(ctx, dto.CourseCreateRequest{Code: "MATH101", Name: "Algebra", Term: "2024B"})
	require.NoError(t, err)

	listed, err := f.courses.List(ctx, "2024A")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, spring.ID, listed[0].ID)

	found, err := f.courses.GetByCodeAndTerm(ctx, "MATH101", "2024A")
	require.NoError(t, err)
	require.Equal(t, spring.ID, found.ID)

	_, err = f.courses.GetByCodeAndTerm(ctx, "MATH101", "2025A")
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseServiceUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course, err := f.courses.Create(ctx, dto.CourseCreateRequest{Code: "BIO", Name: "Biology", Term: "2024A"})
	require.NoError(t, err)

	_, err = f.courses.Update(ctx, course.ID, dto.CourseUpdateRequest{})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)

	updated, err := f.courses.Update(ctx, course.ID, dto.CourseUpdateRequest{Name: stringPtr("<script>x</script>Cell Biology")})
	require.NoError(t, err)
	require.Equal(t, "Cell Biology", updated.Name)

	_, err = f.courses.Update(ctx, 999, dto.CourseUpdateRequest{Name: stringPtr("Ghost")})
	require.ErrorIs(t, err, ErrCourseNotFound)

	require.NoError(t, f.courses.Delete(ctx, course.ID))
	require.ErrorIs(t, f.courses.Delete(ctx, course.ID), ErrCourseNotFound)
}

func TestCourseServiceDeleteBlockedByEnrollment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, course := f.enrolledPair(t, "S-1")
	require.ErrorIs(t, f.courses.Delete(ctx, course.ID), ErrCourseReferenced)
}
