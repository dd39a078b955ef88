package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	e := &Entry{Name: "useToast"}
	now := time.Now()
	e.ApplyDefaults(now)

	assert.Equal(t, DefaultVersion, e.Metadata.Version)
	assert.Equal(t, TypeUtility, e.Metadata.Type)
	assert.NotNil(t, e.Metadata.Dependencies)
	assert.Empty(t, e.Metadata.Dependencies)
	assert.Equal(t, now, e.Metadata.CreatedAt)
	assert.Equal(t, now, e.Metadata.UpdatedAt)
	require.NotNil(t, e.Configuration.Enabled)
	assert.True(t, *e.Configuration.Enabled)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	disabled := false
	created := time.Now().Add(-time.Hour)
	e := &Entry{
		Name: "useToast",
		Metadata: Metadata{
			Version:   "2.1.0",
			Type:      TypeHook,
			CreatedAt: created,
		},
		Configuration: Configuration{Enabled: &disabled},
	}
	e.ApplyDefaults(time.Now())

	assert.Equal(t, "2.1.0", e.Metadata.Version)
	assert.Equal(t, TypeHook, e.Metadata.Type)
	assert.Equal(t, created, e.Metadata.CreatedAt)
	assert.False(t, *e.Configuration.Enabled)
}

func TestIsEnabled(t *testing.T) {
	e := &Entry{Name: "useToast"}
	assert.True(t, e.IsEnabled(), "unset enabled flag counts as enabled")

	enabled := true
	e.Configuration.Enabled = &enabled
	assert.True(t, e.IsEnabled())

	enabled = false
	assert.False(t, e.IsEnabled())
}

func TestHasTag(t *testing.T) {
	e := &Entry{Metadata: Metadata{Tags: []string{"ui", "toast"}}}
	assert.True(t, e.HasTag("toast"))
	assert.False(t, e.HasTag("form"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr string
	}{
		{
			name:    "missing name",
			entry:   Entry{},
			wantErr: "name",
		},
		{
			name:  "valid hook",
			entry: Entry{Name: "useToast", Metadata: Metadata{Type: TypeHook, Version: "1.0.0"}},
		},
		{
			name:    "unknown type",
			entry:   Entry{Name: "x", Metadata: Metadata{Type: "widget"}},
			wantErr: "metadata.type",
		},
		{
			name:    "malformed version",
			entry:   Entry{Name: "x", Metadata: Metadata{Version: "not a version"}},
			wantErr: "metadata.version",
		},
		{
			name:  "prerelease version",
			entry: Entry{Name: "x", Metadata: Metadata{Version: "1.0.0-beta.1"}},
		},
		{
			name:    "self dependency",
			entry:   Entry{Name: "x", Metadata: Metadata{Dependencies: []string{"x"}}},
			wantErr: "metadata.dependencies",
		},
		{
			name:    "empty dependency name",
			entry:   Entry{Name: "x", Metadata: Metadata{Dependencies: []string{""}}},
			wantErr: "metadata.dependencies",
		},
		{
			name:    "negative priority",
			entry:   Entry{Name: "x", Metadata: Metadata{Priority: -1}},
			wantErr: "metadata.priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantErr, vErr.Field)
		})
	}
}

func TestCallLog(t *testing.T) {
	log := NewCallLog()
	assert.Zero(t, log.Count())

	log.Record("hello", 42)
	log.Record()
	require.Equal(t, 2, log.Count())

	calls := log.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []any{"hello", 42}, calls[0].Args)
	assert.False(t, calls[0].At.IsZero())

	log.Reset()
	assert.Zero(t, log.Count())
}

func TestCallable(t *testing.T) {
	fn := func() string { return "ok" }

	plain := Plain(fn)
	assert.False(t, plain.Instrumented())
	assert.Nil(t, plain.Log)

	inst := Instrument(fn)
	assert.True(t, inst.Instrumented())
	require.NotNil(t, inst.Log)

	inst.Log.Record("first")
	assert.Equal(t, 1, inst.Log.Count())
}

func TestCallable_NilSafety(t *testing.T) {
	var c *Callable
	assert.False(t, c.Instrumented())
}
