// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"chopper/internal/app"
	"chopper/internal/report"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CHOPPER_OUT_DIR", "CHOPPER_LENGTH", "CHOPPER_OVERLAP", "CHOPPER_BLANK",
		"CHOPPER_THREADS", "CHOPPER_LOG_LEVEL", "CHOPPER_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestEndToEnd(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fa := write(t, dir, "genome.fa", ">chr1 test chromosome\nACGTAC\nGTAC\n>tiny\nAC\n")
	out := filepath.Join(dir, "out")

	code, stdout, stderr := run(t, "-l", "4", "-v", "2", "-o", out, fa)
	require.Equal(t, 0, code, stderr)

	faOut := filepath.Join(out, "genome_frags.fasta")
	assert.Equal(t, fmt.Sprintf("Wrote 4 records to \"%s\".\nDone. Processed 1 file.\n", faOut), stdout)

	assert.Equal(t, strings.Join([]string{
		">frag_1_chr1 Fragment 1 of chr1 test chromosome", "ACGT",
		">frag_2_chr1 Fragment 2 of chr1 test chromosome", "GTAC",
		">frag_3_chr1 Fragment 3 of chr1 test chromosome", "ACGT",
		">frag_4_chr1 Fragment 4 of chr1 test chromosome", "GTAC",
	}, "\n")+"\n", read(t, faOut))

	tsv := strings.Split(strings.TrimSuffix(read(t, filepath.Join(out, "genome_frags.tsv")), "\n"), "\n")
	require.Len(t, tsv, 5)
	assert.Equal(t, "id\tname\tparent_id\tparent_name\tfrag_start\tfrag_end\ta_pct\tc_pct\tg_pct\tt_pct", tsv[0])
	assert.Equal(t, "frag_2_chr1\tFragment 2 of chr1 test chromosome\tchr1\tchr1 test chromosome\t3\t6\t0.25\t0.25\t0.25\t0.25", tsv[2])

	// the two-base record is skipped with its values in the warning
	assert.Contains(t, stderr, `length "4" greater than sequence (tiny) length (2)`)
	assert.Contains(t, stderr, "seq_id=tiny")
}

func TestEndToEnd_GapIsPreserved(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fa := write(t, dir, "g.fa", ">s\nACGTA\n")
	out := filepath.Join(dir, "out")

	code, _, stderr := run(t, "-l", "2", "-v", "0", "-o", out, fa)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, ">frag_1_s Fragment 1 of s\nAC\n>frag_2_s Fragment 2 of s\nGT\n", read(t, filepath.Join(out, "g_frags.fasta")))
}

func TestParallelMatchesSerial(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, ">s%d\n%s\n", i, strings.Repeat("ACGGT", 3+i%7))
	}
	fa1 := write(t, dir, "a.fa", b.String())
	fa2 := write(t, dir, "b.fa", b.String())

	runOut := func(sub string, threads int) (string, string) {
		out := filepath.Join(dir, sub)
		code, stdout, stderr := run(t, "-l", "10", "-v", "6", "-t", fmt.Sprint(threads), "--jsonl", "-o", out, fa1, fa2)
		require.Equal(t, 0, code, stderr)
		body := read(t, filepath.Join(out, "b_frags.tsv")) + read(t, filepath.Join(out, "b_frags.jsonl"))
		return body, strings.ReplaceAll(stdout, out, "OUT")
	}

	serial, sout := runOut("serial", 1)
	parallel, pout := runOut("parallel", 8)
	assert.Equal(t, serial, parallel)
	assert.Equal(t, sout, pout)
}

func TestBlankPlaceholders(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fa := write(t, dir, "short.fa", ">s\nACG\n")

	out := filepath.Join(dir, "noblank")
	code, stdout, _ := run(t, "-l", "10", "-o", out, fa)
	require.Equal(t, 0, code)
	assert.Equal(t, "Done. Processed 1 file.\n", stdout)
	assert.NoFileExists(t, filepath.Join(out, "short_frags.fasta"))
	assert.NoFileExists(t, filepath.Join(out, "short_frags.tsv"))

	out = filepath.Join(dir, "blank")
	code, stdout, _ = run(t, "-l", "10", "-b", "-o", out, fa)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Wrote 0 records to")
	assert.Equal(t, "\n", read(t, filepath.Join(out, "short_frags.fasta")))
	assert.Equal(t, "\n", read(t, filepath.Join(out, "short_frags.tsv")))
}

func TestFatalConfiguration(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fa := write(t, dir, "x.fa", ">s\nACGTACGT\n")
	out := filepath.Join(dir, "out")

	code, stdout, stderr := run(t, "-l", "0", "-o", out, fa)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "length must be greater than 0")

	code, _, stderr = run(t, "-l", "4", "-v", "5", "-o", out, fa)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "overlap cannot be greater than length")
	assert.NoFileExists(t, filepath.Join(out, "x_frags.fasta"))
}

func TestMissingInputDoesNotStopOthers(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fa := write(t, dir, "ok.fa", ">s\nACGTACGT\n")
	out := filepath.Join(dir, "out")

	code, stdout, stderr := run(t, "-l", "4", "-v", "0", "-o", out, filepath.Join(dir, "missing.fa"), fa)
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "missing.fa")
	assert.Contains(t, stdout, "Wrote 2 records")
	assert.Contains(t, stdout, "Done. Processed 2 files.")
}

func TestSharedOutputPath_LastInputWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	var a, b strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&a, ">a%d\n%s\n", i, strings.Repeat("ACGTTGCA", 10))
		fmt.Fprintf(&b, ">b%d\n%s\n", i, strings.Repeat("GGCCAATT", 10))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))
	faA := write(t, filepath.Join(dir, "a"), "g.fa", a.String())
	faB := write(t, filepath.Join(dir, "b"), "g.fa", b.String())

	// reference: the second input alone
	ref := filepath.Join(dir, "ref")
	code, _, stderr := run(t, "-l", "20", "-v", "10", "-t", "1", "-o", ref, faB)
	require.Equal(t, 0, code, stderr)

	for i := 0; i < 3; i++ {
		out := filepath.Join(dir, fmt.Sprintf("out%d", i))
		code, stdout, stderr := run(t, "-l", "20", "-v", "10", "-t", "4", "-o", out, faA, faB)
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stderr, "share an output path")

		faOut := filepath.Join(out, "g_frags.fasta")
		line := fmt.Sprintf("Wrote 2100 records to \"%s\".\n", faOut)
		assert.Equal(t, line+line+"Done. Processed 2 files.\n", stdout)

		assert.Equal(t, read(t, filepath.Join(ref, "g_frags.fasta")), read(t, faOut))
		assert.Equal(t, read(t, filepath.Join(ref, "g_frags.tsv")), read(t, filepath.Join(out, "g_frags.tsv")))
	}
}

func TestBlank_FailedInputGetsNoPlaceholder(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	code, stdout, _ := run(t, "-l", "4", "-b", "-o", out, filepath.Join(dir, "missing.fa"))
	assert.Equal(t, 3, code)
	assert.NotContains(t, stdout, "Wrote")
	assert.NoFileExists(t, filepath.Join(out, "missing_frags.fasta"))
	assert.NoFileExists(t, filepath.Join(out, "missing_frags.tsv"))
}

func TestProgressPrintsPathVerbatim(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fa := write(t, dir, "génome.fa", ">s\nACGTACGT\n")
	out := filepath.Join(dir, `sortie\é`)

	code, stdout, stderr := run(t, "-l", "4", "-v", "0", "-o", out, fa)
	require.Equal(t, 0, code, stderr)
	faOut := filepath.Join(out, "génome_frags.fasta")
	assert.Equal(t, "Wrote 2 records to \""+faOut+"\".\nDone. Processed 1 file.\n", stdout)
}

func TestEnvDefaultsAndSummary(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	// a: 17 bases, min overlap 3 -> two fragments; b: 12 bases, min overlap 8 -> skipped
	fa := write(t, dir, "e.fa", ">a\nACGTACGTACGTACGTA\n>b\nACGTACGTACGT\n")
	out := filepath.Join(dir, "envout")
	t.Setenv("CHOPPER_LENGTH", "10")
	t.Setenv("CHOPPER_OVERLAP", "3")
	t.Setenv("CHOPPER_OUT_DIR", out)
	t.Setenv("CHOPPER_LOG_FORMAT", "json")
	sumPath := filepath.Join(dir, "summary.yaml")

	code, _, stderr := run(t, "--summary", sumPath, fa)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(out, "e_frags.fasta"))
	assert.Contains(t, stderr, `"min_overlap":8`)

	var sum report.Summary
	require.NoError(t, yaml.Unmarshal([]byte(read(t, sumPath)), &sum))
	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 10, sum.Length)
	require.Len(t, sum.Files, 1)
	assert.Equal(t, 2, sum.Files[0].Sequences)
	assert.Equal(t, 1, sum.Files[0].Skipped)
	assert.Equal(t, 2, sum.Files[0].Fragments)
	require.Len(t, sum.Files[0].Skips, 1)
	assert.Equal(t, "b", sum.Files[0].Skips[0].SeqID)
}

func TestNoArgsPrintsHelp(t *testing.T) {
	clearEnv(t)
	code, stdout, _ := run(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Chop genome(s) into simulated contigs")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "chopper version "))
}

func TestUnknownFlag(t *testing.T) {
	code, _, stderr := run(t, "--nope", "x.fa")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown flag")
}
