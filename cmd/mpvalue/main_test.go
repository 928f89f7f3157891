package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/mpvalue/frame"
	"github.com/arloliu/mpvalue/variant"
	"github.com/stretchr/testify/require"
)

func sampleInput(t *testing.T) []byte {
	t.Helper()

	first, err := variant.Marshal(variant.NewMap(
		variant.KV(variant.NewStr("b"), variant.NewInt(1)),
		variant.KV(variant.NewStr("a"), variant.NewInt(-2)),
	))
	require.NoError(t, err)

	second, err := variant.Marshal(variant.NewArray(variant.NewNil(), variant.NewBool(true), variant.NewBin([]byte{0xab})))
	require.NoError(t, err)

	return append(first, second...)
}

func writeInput(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.msgpack")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestRun_Prints(t *testing.T) {
	path := writeInput(t, sampleInput(t))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{path}, "{\"b\":1,\"a\":-2}\n[null,true,b\"ab\"]\n"},
		{"canonical", []string{"-canonical", path}, "{\"a\":-2,\"b\":1}\n[null,true,b\"ab\"]\n"},
		{"mmap", []string{"-mmap", path}, "{\"b\":1,\"a\":-2}\n[null,true,b\"ab\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.NoError(t, run(tt.args, nil, &stdout, &stderr))
			require.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRun_Stdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-"}, bytes.NewReader(sampleInput(t)), &stdout, &stderr))
	require.Equal(t, 2, strings.Count(stdout.String(), "\n"))
}

func TestRun_EmptyFileWithMmap(t *testing.T) {
	path := writeInput(t, nil)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-mmap", path}, nil, &stdout, &stderr))
	require.Empty(t, stdout.String())
}

func TestRun_FramesRoundTrip(t *testing.T) {
	input := sampleInput(t)
	path := writeInput(t, input)
	outPath := filepath.Join(t.TempDir(), "frames.bin")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-out", outPath, "-compression", "zstd", path}, nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "wrote frames")

	framed, err := os.ReadFile(outPath)
	require.NoError(t, err)

	want, err := variant.UnmarshalAll[variant.Owned](input)
	require.NoError(t, err)
	got, err := frame.DecodeAll[variant.Owned](framed)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].Equal(got[i]))
	}

	var again bytes.Buffer
	require.NoError(t, run([]string{"-framed", "-mmap", outPath}, nil, &again, &stderr))
	require.Equal(t, stdout.String(), again.String())
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.ErrorContains(t, run(nil, nil, &stdout, &stderr), "no input files")

	truncated := append(sampleInput(t), 0x92, 0x01)
	path := writeInput(t, truncated)

	stdout.Reset()
	err := run([]string{path}, nil, &stdout, &stderr)
	require.ErrorContains(t, err, path)
	require.Equal(t, 2, strings.Count(stdout.String(), "\n"), "values before the failure are still printed")

	err = run([]string{filepath.Join(t.TempDir(), "absent")}, nil, &stdout, &stderr)
	require.Error(t, err)

	err = run([]string{"-framed", writeInput(t, sampleInput(t))}, nil, &stdout, &stderr)
	require.Error(t, err)
}
