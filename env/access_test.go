package env

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootenv/internal/format"
	"github.com/joshuapare/bootenv/pkg/types"
)

func openSeeded(t *testing.T, vars ...format.Var) *Store {
	t.Helper()
	cfg, devs := singleSetup(t, copySize)
	putCopy(t, devs[devA], 0, cfg.Layout(), 0, vars...)
	s, err := Open(cfg, Options{Opener: devs.Open})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetThenGet(t *testing.T) {
	s := openSeeded(t)
	values := []string{"", "plain", "with = equals", "spaces  and\ttabs", "üñíçødé"}
	for i, v := range values {
		name := fmt.Sprintf("var%d", i)
		require.NoError(t, s.Set(name, v))
		got, err := s.Get(name)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
	require.Equal(t, len(values), s.Len())
}

func TestGet_NotFound(t *testing.T) {
	s := openSeeded(t, kv("foo", "bar"))
	_, err := s.Get("nope")
	require.ErrorIs(t, err, types.ErrNotFound)
	_, ok := s.Lookup("nope")
	require.False(t, ok)
}

func TestSet_RejectsInvalid(t *testing.T) {
	s := openSeeded(t)
	require.ErrorIs(t, s.Set("", "x"), types.ErrInvalid)
	require.ErrorIs(t, s.Set("a=b", "x"), types.ErrInvalid)
	require.ErrorIs(t, s.Set("a\x00", "x"), types.ErrInvalid)
	require.ErrorIs(t, s.Set("a", "x\x00y"), types.ErrInvalid)
	require.False(t, s.Dirty())
}

func TestDelete(t *testing.T) {
	s := openSeeded(t, kv("a", "1"), kv("b", "2"))
	require.NoError(t, s.Delete("a"))
	require.True(t, s.Dirty())
	_, err := s.Get("a")
	require.ErrorIs(t, err, types.ErrNotFound)
	require.Equal(t, []format.Var{kv("b", "2")}, collect(s))
}

func TestAll_OrderIsLoadThenInsertion(t *testing.T) {
	s := openSeeded(t, kv("zeta", "1"), kv("alpha", "2"))
	require.NoError(t, s.Set("mid", "3"))
	require.NoError(t, s.Set("zeta", "10"))
	require.Equal(t, []format.Var{kv("zeta", "10"), kv("alpha", "2"), kv("mid", "3")}, collect(s))
}

func TestAll_RestartableSnapshot(t *testing.T) {
	s := openSeeded(t, kv("a", "1"), kv("b", "2"))
	seq := s.All()

	var seen []string
	for name := range seq {
		seen = append(seen, name)
		// mutations inside the loop do not affect this pass
		require.NoError(t, s.Set("c", "3"))
		require.NoError(t, s.Delete("b"))
	}
	require.Equal(t, []string{"a", "b"}, seen)

	seen = seen[:0]
	for name := range seq {
		seen = append(seen, name)
	}
	require.Equal(t, []string{"a", "c"}, seen, "a new pass sees the current table")
}

func TestAll_EarlyBreak(t *testing.T) {
	s := openSeeded(t, kv("a", "1"), kv("b", "2"), kv("c", "3"))
	n := 0
	for range s.All() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}

func TestApplyScript(t *testing.T) {
	s := openSeeded(t, kv("keep", "same"), kv("gone", "x"), kv("change", "old"))
	script := strings.Join([]string{
		"# network setup",
		"keep=same",
		"change=new",
		"gone=",
		"absent=",
		"added=empty empty empty    empty",
		"bar",
		"",
	}, "\n")

	n, err := s.ApplyScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.True(t, s.Dirty())
	require.Equal(t, []format.Var{
		kv("keep", "same"),
		kv("change", "new"),
		kv("added", "empty empty empty    empty"),
	}, collect(s))
}

func TestApplyScript_NoChangesStaysClean(t *testing.T) {
	s := openSeeded(t, kv("a", "1"))
	n, err := s.ApplyScript(strings.NewReader("a=1\n#b=2\nnoise\n"))
	require.NoError(t, err)
	require.Zero(t, n)
	require.False(t, s.Dirty())
	require.NoError(t, s.Persist(context.Background()))
}

func TestApplyScriptFile_Missing(t *testing.T) {
	s := openSeeded(t)
	_, err := s.ApplyScriptFile("/nonexistent/script")
	require.ErrorIs(t, err, types.ErrIO)
}

func TestRoundTripThroughStore(t *testing.T) {
	cfg, devs := redundantSetup(t, copySize)
	s, err := Open(cfg, Options{Opener: devs.Open, DefaultEnv: writeDefaults(t, "")})
	require.NoError(t, err)
	want := []format.Var{kv("bootargs", "console=ttyS0,115200 root=/dev/mmcblk0p2"), kv("ethaddr", "00:11:22:33:44:55"), kv("blank", "")}
	for _, v := range want {
		require.NoError(t, s.Set(v.Name, v.Value))
	}
	require.NoError(t, s.Persist(context.Background()))
	require.NoError(t, s.Close())

	s, err = Open(cfg, Options{Opener: devs.Open})
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, want, collect(s))
}
