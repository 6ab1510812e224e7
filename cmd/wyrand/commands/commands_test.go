package commands

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opd-ai/go-wyrand"
	"github.com/opd-ai/go-wyrand/internal/config"
)

// testEnv returns an Env backed by an in-memory filesystem and the
// default configuration.
func testEnv(t *testing.T, stdin string) (*Env, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &Env{
		Config: config.Config{
			Environment: config.EnvDev,
			LogLevel:    "debug",
			Revision:    "current",
			Workers:     2,
		},
		Log: zap.NewNop(),
		Fs:  afero.NewMemMapFs(),
		In:  strings.NewReader(stdin),
		Out: out,
	}, out
}

func run(env *Env, args ...string) error {
	root := NewRootCommand(env)
	root.SetArgs(args)
	return root.Execute()
}

// 309ab4c045215e8f is the current-revision, seed-0 digest of
// "message digest"; the root package pins it in TestHasherSeedZero.
func TestHashString(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "hash", "-s", "message digest"))
	assert.Equal(t, "309ab4c045215e8f\n", out.String())
}

func TestHashEmptyString(t *testing.T) {
	env, out := testEnv(t, "ignored")
	require.NoError(t, run(env, "hash", "--string", ""))
	want := fmt.Sprintf("%016x\n", wyrand.Sum64(wyrand.Current, 0, nil))
	assert.Equal(t, want, out.String())
}

func TestHashStdin(t *testing.T) {
	env, out := testEnv(t, "message digest")
	require.NoError(t, run(env, "hash"))
	assert.Equal(t, "309ab4c045215e8f  -\n", out.String())
}

func TestHashRevisionAndSeed(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "hash", "-r", "legacy", "--seed", "9", "-s", "abc"))
	want := fmt.Sprintf("%016x\n", wyrand.Sum64(wyrand.Legacy, 9, []byte("abc")))
	assert.Equal(t, want, out.String())
}

func TestHashSecretSeed(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "hash", "--secret-seed", "0x2a", "-s", "message digest"))
	assert.Equal(t, "d32e4d7228d569d0\n", out.String())
}

func TestHashFilesKeepOrder(t *testing.T) {
	env, out := testEnv(t, "")
	names := []string{"c.txt", "a.txt", "dir/b.bin", "empty"}
	contents := map[string]string{
		"c.txt":     "third",
		"a.txt":     "first",
		"dir/b.bin": strings.Repeat("x", 1000),
		"empty":     "",
	}
	require.NoError(t, env.Fs.MkdirAll("dir", 0o755))
	for name, body := range contents {
		require.NoError(t, afero.WriteFile(env.Fs, name, []byte(body), 0o644))
	}

	require.NoError(t, run(env, append([]string{"hash", "-w", "3"}, names...)...))

	var want strings.Builder
	for _, name := range names {
		fmt.Fprintf(&want, "%016x  %s\n", wyrand.Sum64(wyrand.Current, 0, []byte(contents[name])), name)
	}
	assert.Equal(t, want.String(), out.String())
}

func TestHashMissingFile(t *testing.T) {
	env, _ := testEnv(t, "")
	require.NoError(t, afero.WriteFile(env.Fs, "present", []byte("x"), 0o644))

	err := run(env, "hash", "present", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestHashConflictingInput(t *testing.T) {
	env, _ := testEnv(t, "")
	err := run(env, "hash", "-s", "abc", "file")
	assert.ErrorIs(t, err, ErrConflictingInput)
}

func TestHashInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"revision", []string{"hash", "-r", "v5", "-s", "x"}, wyrand.ErrInvalidRevision},
		{"secret seed", []string{"hash", "--secret-seed", "nope", "-s", "x"}, config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, out := testEnv(t, "")
			assert.ErrorIs(t, run(env, tt.args...), tt.want)
			assert.Empty(t, out.String())
		})
	}
}

func TestHashSecretSeedFromConfig(t *testing.T) {
	env, out := testEnv(t, "")
	env.Config.SecretSeed = "42"
	require.NoError(t, run(env, "hash", "-s", "message digest"))
	assert.Equal(t, "d32e4d7228d569d0\n", out.String())
}

func TestRandFormats(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "u64",
			args: []string{"rand", "-n", "2"},
			want: "11116517241604665558\n91298403691422709\n",
		},
		{
			name: "hex",
			args: []string{"rand", "-n", "2", "-f", "hex"},
			want: "9a45cd888d59f0d6\n01445b6a189663f5\n",
		},
		{
			name: "u32 legacy",
			args: []string{"rand", "-n", "2", "-f", "u32", "-r", "legacy"},
			want: "2405016974\n4283336045\n",
		},
		{
			name: "bytes",
			args: []string{"rand", "-n", "5", "-f", "bytes"},
			want: "\xd6\xf0\x59\x8d\x88",
		},
		{
			name: "zero count",
			args: []string{"rand", "-n", "0"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, out := testEnv(t, "")
			require.NoError(t, run(env, tt.args...))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestWriteRandomRejectsFormatUpFront(t *testing.T) {
	var out bytes.Buffer
	err := writeRandom(&out, wyrand.NewRand(wyrand.Current, 0), 0, "octal")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Empty(t, out.String())
}

func TestRandBytesMatchesRead(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "rand", "-f", "bytes", "-n", "100", "--seed", "123"))

	want := make([]byte, 100)
	wyrand.NewRand(wyrand.Current, 123).Read(want)
	assert.Equal(t, want, out.Bytes())
}

func TestRandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"rand", "-f", "octal"}},
		{"format with zero count", []string{"rand", "-n", "0", "-f", "octal"}},
		{"count", []string{"rand", "-n", "-1"}},
		{"revision", []string{"rand", "-r", "bogus"}},
		{"extra args", []string{"rand", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := testEnv(t, "")
			assert.Error(t, run(env, tt.args...))
		})
	}
}

func TestSecret(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "secret", "42"))
	want := "secret[0] = 0x8b4be21b934dc6a3\n" +
		"secret[1] = 0x9a0f72f0e81b6969\n" +
		"secret[2] = 0x99746a47f066331b\n" +
		"secret[3] = 0xccb8b85a99aaa9b1\n" +
		"valid current secret\n"
	assert.Equal(t, want, out.String())
}

func TestSecretLegacyHexSeed(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "secret", "-r", "legacy", "0x2a"))
	assert.True(t, strings.HasPrefix(out.String(), "secret[0] = 0x4d781d729a998b95\n"))
	assert.True(t, strings.HasSuffix(out.String(), "valid legacy secret\n"))
}

func TestSecretErrors(t *testing.T) {
	env, _ := testEnv(t, "")
	assert.Error(t, run(env, "secret", "-1"))
	assert.Error(t, run(env, "secret"))
	assert.Error(t, run(env, "secret", "-r", "v9", "1"))
}

const vectorFile = `{
  "version": "test",
  "vectors": [
    {"name": "empty", "revision": "current", "seed": 0, "input": "", "expected": "%016x"},
    {"name": "digest", "revision": "current", "seed": 0, "input": "message digest", "expected": "309ab4c045215e8f"},
    {"name": "keyed", "revision": "current", "seed": 0, "secret_seed": 42, "input": "message digest", "expected": "%s"}
  ]
}`

func TestVerify(t *testing.T) {
	env, out := testEnv(t, "")
	body := fmt.Sprintf(vectorFile, wyrand.Sum64(wyrand.Current, 0, nil), "d32e4d7228d569d0")
	require.NoError(t, afero.WriteFile(env.Fs, "vectors.json", []byte(body), 0o644))

	require.NoError(t, run(env, "verify", "vectors.json"))
	assert.Equal(t, "3/3 vectors passed\n", out.String())
}

func TestVerifyMismatch(t *testing.T) {
	env, out := testEnv(t, "")
	body := fmt.Sprintf(vectorFile, wyrand.Sum64(wyrand.Current, 0, nil), "0000000000000000")
	require.NoError(t, afero.WriteFile(env.Fs, "vectors.json", []byte(body), 0o644))

	err := run(env, "verify", "vectors.json")
	assert.ErrorIs(t, err, ErrVectorMismatch)
	assert.Contains(t, out.String(), "FAIL keyed: got d32e4d7228d569d0, want 0000000000000000\n")
	assert.Contains(t, out.String(), "2/3 vectors passed\n")
}

func TestVerifyMissingFile(t *testing.T) {
	env, _ := testEnv(t, "")
	assert.Error(t, run(env, "verify", "nope.json"))
}

func TestBench(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "bench", "--sizes", "16B, 1KiB", "--duration", "1ms"))

	s := out.String()
	for _, want := range []string{"wyhash/legacy", "wyhash/current", "xxhash", "16 B", "1.0 KiB"} {
		assert.Contains(t, s, want)
	}
}

func TestBenchErrors(t *testing.T) {
	env, _ := testEnv(t, "")
	assert.Error(t, run(env, "bench", "--sizes", "lots"))
	assert.Error(t, run(env, "bench", "--sizes", ","))
	assert.Error(t, run(env, "bench", "--duration", "0s"))
}

func TestMeasure(t *testing.T) {
	var calls int
	ns := measure(func(b []byte) uint64 {
		calls++
		return uint64(len(b))
	}, make([]byte, 8), time.Millisecond)

	assert.Positive(t, ns)
	assert.Positive(t, calls)
}

func TestThroughput(t *testing.T) {
	assert.Equal(t, "6.0 GiB/s", throughput(16, 2.5))
	assert.Equal(t, "n/a", throughput(16, 0))
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("16B,4KiB, 1MiB,")
	require.NoError(t, err)
	assert.Equal(t, []uint64{16, 4096, 1 << 20}, sizes)
}

func TestVersion(t *testing.T) {
	env, out := testEnv(t, "")
	require.NoError(t, run(env, "version"))
	assert.Equal(t, "wyrand "+Version+"\n", out.String())
}
