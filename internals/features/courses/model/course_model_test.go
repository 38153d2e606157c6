package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// The slug constraint must span (tenant_id, course_slug): the same slug
// under two different tenants is legal.
func TestCourseSlugUniquePerTenant(t *testing.T) {
	s, err := schema.Parse(&CourseModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx, ok := s.ParseIndexes()["uq_courses_tenant_slug"]
	require.True(t, ok, "composite unique index missing")
	assert.Equal(t, "UNIQUE", idx.Class)

	fields := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		fields = append(fields, f.DBName)
	}
	assert.ElementsMatch(t, []string{"tenant_id", "course_slug"}, fields)
}

func TestIsValidCourseStatus(t *testing.T) {
	assert.True(t, IsValidCourseStatus(StatusDraft))
	assert.True(t, IsValidCourseStatus(StatusPublished))
	assert.True(t, IsValidCourseStatus(StatusArchived))
	assert.False(t, IsValidCourseStatus("published"))
	assert.False(t, IsValidCourseStatus(""))
}
