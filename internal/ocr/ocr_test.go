package ocr

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return f.stdout, f.stderr, f.err
}

func testImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 8, 8))
}

func TestRecognizerDefaults(t *testing.T) {
	r := NewRecognizer(Config{}, nil)
	assert.Equal(t, "tesseract", r.cfg.Tesseract)
	assert.Equal(t, "eng", r.cfg.Lang)
	assert.Equal(t, 6, r.cfg.PSM)
	assert.Equal(t, os.TempDir(), r.cfg.ArtifactDir)
}

func TestRecognizeInvocation(t *testing.T) {
	r := NewRecognizer(Config{
		Lang:        "eng+swa",
		PSM:         4,
		OEM:         1,
		TessdataDir: "/opt/tessdata",
		ArtifactDir: t.TempDir(),
	}, nil)
	fake := &fakeRunner{stdout: []byte("Invoice No: 554\n")}
	r.runner = fake

	text, err := r.Recognize(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "Invoice No: 554", text)

	assert.Equal(t, "tesseract", fake.name)
	require.GreaterOrEqual(t, len(fake.args), 2)
	assert.Equal(t, "stdout", fake.args[1])
	assert.Contains(t, fake.args[0], ".png")
	assert.Equal(t, []string{"-l", "eng+swa", "--psm", "4", "--oem", "1", "--tessdata-dir", "/opt/tessdata"}, fake.args[2:])
}

func TestRecognizeOmitsOptionalFlags(t *testing.T) {
	r := NewRecognizer(Config{ArtifactDir: t.TempDir()}, nil)
	fake := &fakeRunner{stdout: []byte("x")}
	r.runner = fake

	_, err := r.Recognize(context.Background(), testImage())
	require.NoError(t, err)
	assert.NotContains(t, fake.args, "--oem")
	assert.NotContains(t, fake.args, "--tessdata-dir")
}

func TestRecognizeNormalizesOutput(t *testing.T) {
	r := NewRecognizer(Config{ArtifactDir: t.TempDir()}, nil)
	r.runner = &fakeRunner{stdout: []byte("Invoice  No:\t554\r\n----------\r\n\r\n\r\n\r\nDate: 12/05/2024  \r\n")}

	text, err := r.Recognize(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "Invoice No: 554\n\nDate: 12/05/2024", text)
}

func TestRecognizeRunnerError(t *testing.T) {
	r := NewRecognizer(Config{ArtifactDir: t.TempDir()}, nil)
	r.runner = &fakeRunner{stderr: []byte("no tessdata"), err: errors.New("exit status 1")}

	text, err := r.Recognize(context.Background(), testImage())
	assert.Empty(t, text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
}

func TestRecognizeCleansUpStagedPNG(t *testing.T) {
	dir := t.TempDir()
	r := NewRecognizer(Config{ArtifactDir: dir}, nil)
	r.runner = &fakeRunner{stdout: []byte("x")}

	_, err := r.Recognize(context.Background(), testImage())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecognizeNilImage(t *testing.T) {
	r := NewRecognizer(Config{ArtifactDir: t.TempDir()}, nil)
	r.runner = &fakeRunner{stdout: []byte("x")}

	_, err := r.Recognize(context.Background(), nil)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 8))
	long := strings.Repeat("e", 20)
	assert.Equal(t, strings.Repeat("e", 8)+"...(truncated)", truncate(long, 8))
}

func TestAvailable(t *testing.T) {
	r := NewRecognizer(Config{Tesseract: "definitely-not-a-binary-4711"}, nil)
	assert.False(t, r.Available())

	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics differ on windows")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "tesseract")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	r = NewRecognizer(Config{Tesseract: bin}, nil)
	assert.True(t, r.Available())
}
