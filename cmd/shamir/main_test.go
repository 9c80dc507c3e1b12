package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/privy-io/shamir-secret-sharing/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func runApp(t *testing.T, a *app, args ...string) result {
	t.Helper()

	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()

	return result{
		stdout: a.out.(*bytes.Buffer).String(),
		stderr: a.errOut.(*bytes.Buffer).String(),
		err:    err,
	}
}

func testApp(stdin string) *app {
	a := newApp(strings.NewReader(stdin), &bytes.Buffer{}, &bytes.Buffer{})
	a.lookupEnv = noEnv
	a.readPassword = func() ([]byte, error) {
		return nil, errors.New("no terminal")
	}
	return a
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return runApp(t, testApp(stdin), args...)
}

func lines(s string) []string {
	return strings.Fields(s)
}

func TestSplitCombineText(t *testing.T) {
	split := run(t, "correct horse battery staple", "split", "-n", "5", "-t", "3")
	require.NoError(t, split.err)

	shares := lines(split.stdout)
	require.Len(t, shares, 5)

	combine := run(t, "", append([]string{"combine"}, shares[1], shares[3], shares[4])...)
	require.NoError(t, combine.err)
	assert.Equal(t, "correct horse battery staple", combine.stdout)

	fromStdin := run(t, "# comment\n"+strings.Join(shares[:3], "\n")+"\n\n", "combine")
	require.NoError(t, fromStdin.err)
	assert.Equal(t, "correct horse battery staple", fromStdin.stdout)
}

func TestSplitFormats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		split := run(t, "secret", "split", "-n", "4", "-t", "2", "-f", "json")
		require.NoError(t, split.err)

		var b bundle
		require.NoError(t, json.Unmarshal([]byte(split.stdout), &b))
		assert.Equal(t, 2, b.Threshold)
		require.Len(t, b.Shares, 4)

		combine := run(t, split.stdout, "combine", "--format", "JSON")
		require.NoError(t, combine.err)
		assert.Equal(t, "secret", combine.stdout)
	})

	t.Run("yaml", func(t *testing.T) {
		split := run(t, "secret", "split", "-n", "4", "-t", "3", "-f", "yaml")
		require.NoError(t, split.err)

		var b bundle
		require.NoError(t, yaml.Unmarshal([]byte(split.stdout), &b))
		assert.Equal(t, 3, b.Threshold)
		require.Len(t, b.Shares, 4)

		combine := run(t, split.stdout, "combine", "-f", "yaml")
		require.NoError(t, combine.err)
		assert.Equal(t, "secret", combine.stdout)

		verify := run(t, split.stdout, "verify", "-f", "yaml")
		require.NoError(t, verify.err)
		assert.Equal(t, "ok\n", verify.stdout)
	})

	t.Run("unknown", func(t *testing.T) {
		split := run(t, "secret", "split", "-f", "toml")
		assert.ErrorContains(t, split.err, "unknown format")
	})
}

func TestSplitFiles(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "secret.bin")
	sharesPath := filepath.Join(dir, "shares.txt")
	outPath := filepath.Join(dir, "recovered.bin")

	secret := []byte{0x00, 0xff, 0x10, 0x0a}
	require.NoError(t, os.WriteFile(secretPath, secret, 0o600))

	split := run(t, "", "split", "--in", secretPath, "--out", sharesPath)
	require.NoError(t, split.err)
	assert.Empty(t, split.stdout)

	info, err := os.Stat(sharesPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	combine := run(t, "", "combine", "--in", sharesPath, "--out", outPath)
	require.NoError(t, combine.err)

	recovered, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestOutputTightensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovered.bin")
	require.NoError(t, os.WriteFile(path, []byte("stale contents"), 0o644))
	require.NoError(t, os.Chmod(path, 0o644))

	split := run(t, "secret", "split", "-n", "2", "-t", "2")
	require.NoError(t, split.err)

	combine := run(t, split.stdout, "combine", "--out", path)
	require.NoError(t, combine.err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	recovered, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(recovered))
}

func TestSplitPrompt(t *testing.T) {
	a := testApp("")
	a.readPassword = func() ([]byte, error) {
		return []byte("typed secret"), nil
	}

	split := runApp(t, a, "split", "--prompt")
	require.NoError(t, split.err)
	assert.Contains(t, split.stderr, "Secret: ")

	shares := lines(split.stdout)
	require.Len(t, shares, 3)

	combine := run(t, "", "combine", shares[0], shares[2])
	require.NoError(t, combine.err)
	assert.Equal(t, "typed secret", combine.stdout)

	failed := run(t, "", "split", "--prompt")
	assert.ErrorContains(t, failed.err, "no terminal")
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
	}{
		{"empty secret", "", []string{"split"}, shamir.ErrEmptySecret},
		{"threshold exceeds shares", "s", []string{"split", "-n", "3", "-t", "4"}, shamir.ErrThresholdExceedsShareCount},
		{"too many shares", "s", []string{"split", "-n", "256"}, shamir.ErrShareCountOutOfRange},
		{"threshold too small", "s", []string{"split", "-t", "1"}, shamir.ErrThresholdOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.stdin, tt.args...)
			assert.ErrorIs(t, res.err, tt.wantErr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestCombineErrors(t *testing.T) {
	split := run(t, "secret", "split")
	require.NoError(t, split.err)
	shares := lines(split.stdout)

	t.Run("single share", func(t *testing.T) {
		res := run(t, "", "combine", shares[0])
		assert.ErrorIs(t, res.err, shamir.ErrShareCollectionLengthOutOfRange)
	})

	t.Run("duplicate share", func(t *testing.T) {
		res := run(t, "", "combine", shares[0], shares[0])
		assert.ErrorIs(t, res.err, shamir.ErrDuplicateShareCoordinate)
	})

	t.Run("malformed share", func(t *testing.T) {
		res := run(t, "", "combine", shares[0], "%%%")
		assert.ErrorIs(t, res.err, shamir.ErrInvalidShareFormat)
	})

	t.Run("missing input file", func(t *testing.T) {
		res := run(t, "", "combine", "--in", filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, res.err)
	})
}

func TestVerify(t *testing.T) {
	split := run(t, "secret", "split", "-n", "5", "-t", "3")
	require.NoError(t, split.err)
	shares := lines(split.stdout)

	ok := run(t, "", append([]string{"verify", "-t", "3"}, shares...)...)
	require.NoError(t, ok.err)
	assert.Equal(t, "ok\n", ok.stdout)

	corrupted, err := shamir.ParseShare(shares[4])
	require.NoError(t, err)
	corrupted[0] ^= 0x01

	bad := run(t, "", "verify", "-t", "3", shares[0], shares[1], shares[2], corrupted.String())
	assert.ErrorIs(t, bad.err, shamir.ErrVerificationFailed)
	assert.Contains(t, bad.stderr, "share verification failed")

	tooFew := run(t, "", "verify", "-t", "3", shares[0], shares[1])
	assert.ErrorIs(t, tooFew.err, shamir.ErrInsufficientShares)
}

func TestVerifyThresholdSource(t *testing.T) {
	split := run(t, "secret", "split", "-n", "5", "-t", "3")
	require.NoError(t, split.err)
	shares := lines(split.stdout)

	t.Run("text input without threshold", func(t *testing.T) {
		res := run(t, split.stdout, "verify", "-f", "text")
		assert.ErrorIs(t, res.err, errThresholdRequired)
		assert.NotErrorIs(t, res.err, shamir.ErrVerificationFailed)
		assert.Empty(t, res.stdout)
	})

	t.Run("arguments without threshold", func(t *testing.T) {
		res := run(t, "", append([]string{"verify"}, shares...)...)
		assert.ErrorIs(t, res.err, errThresholdRequired)
	})

	t.Run("text input with flag", func(t *testing.T) {
		res := run(t, split.stdout, "verify", "-t", "3")
		require.NoError(t, res.err)
		assert.Equal(t, "ok\n", res.stdout)
	})

	t.Run("environment", func(t *testing.T) {
		a := testApp(split.stdout)
		a.lookupEnv = mapEnv(map[string]string{"SHAMIR_THRESHOLD": "3"})

		res := runApp(t, a, "verify")
		require.NoError(t, res.err)
		assert.Equal(t, "ok\n", res.stdout)
	})

	t.Run("config file", func(t *testing.T) {
		path := writeFile(t, "shamir.yaml", "threshold: 3\n")

		res := run(t, split.stdout, "--config", path, "verify")
		require.NoError(t, res.err)
		assert.Equal(t, "ok\n", res.stdout)
	})

	t.Run("json bundle", func(t *testing.T) {
		bundled := run(t, "secret", "split", "-n", "5", "-t", "3", "-f", "json")
		require.NoError(t, bundled.err)

		res := run(t, bundled.stdout, "verify", "-f", "json")
		require.NoError(t, res.err)
		assert.Equal(t, "ok\n", res.stdout)
	})

	t.Run("flag overrides bundle", func(t *testing.T) {
		bundled := run(t, "secret", "split", "-n", "5", "-t", "3", "-f", "json")
		require.NoError(t, bundled.err)

		res := run(t, bundled.stdout, "verify", "-f", "json", "-t", "2")
		assert.ErrorIs(t, res.err, shamir.ErrVerificationFailed)
	})
}

func TestConfigAndLogging(t *testing.T) {
	path := writeFile(t, "shamir.yaml", "shares: 6\nthreshold: 4\nlog:\n  level: debug\n")

	split := run(t, "secret", "--config", path, "split", "--log-format", "json")
	require.NoError(t, split.err)
	assert.Len(t, lines(split.stdout), 6)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(split.stderr)), &entry))
	assert.Equal(t, "split secret", entry["msg"])
	assert.EqualValues(t, 6, entry["shares"])
	assert.EqualValues(t, 4, entry["threshold"])
	assert.NotContains(t, entry, "secret")

	// flags win over the config file
	flagged := run(t, "secret", "--config", path, "split", "-n", "2", "-t", "2", "--log-level", "error")
	require.NoError(t, flagged.err)
	assert.Len(t, lines(flagged.stdout), 2)
	assert.Empty(t, flagged.stderr)

	a := testApp("secret")
	a.lookupEnv = mapEnv(map[string]string{"SHAMIR_SHARES": "7", "SHAMIR_THRESHOLD": "5"})
	env := runApp(t, a, "split")
	require.NoError(t, env.err)
	assert.Len(t, lines(env.stdout), 7)

	bad := run(t, "secret", "split", "--log-level", "loud")
	assert.ErrorContains(t, bad.err, "unknown log level")
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "shamir dev"), res.stdout)
}
