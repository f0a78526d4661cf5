package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sekolah-go-api/pkg/storage"
)

// pngHeader is the magic prefix of a PNG file, enough for content sniffing.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func buildFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func newUploadFixture(t *testing.T, maxMB int) UploadService {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return NewUploadService(store, maxMB, zerolog.Nop())
}

func TestUploadServiceSaveImageAcceptsPNG(t *testing.T) {
	svc := newUploadFixture(t, 10)

	name, err := svc.SaveImage(context.Background(), "gallery", buildFileHeader(t, "photo.png", pngHeader))
	require.NoError(t, err)
	require.NotEmpty(t, name)
}

func TestUploadServiceSaveImageRejectsExtension(t *testing.T) {
	svc := newUploadFixture(t, 10)

	_, err := svc.SaveImage(context.Background(), "gallery", buildFileHeader(t, "script.exe", pngHeader))
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestUploadServiceSaveImageRejectsSpoofedContent(t *testing.T) {
	svc := newUploadFixture(t, 10)

	// A text payload wearing an image extension must be rejected.
	_, err := svc.SaveImage(context.Background(), "gallery", buildFileHeader(t, "fake.png", []byte("#!/bin/sh\nrm -rf /\n")))
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestUploadServiceRejectsOversizedFile(t *testing.T) {
	svc := newUploadFixture(t, 1)

	big := make([]byte, (1<<20)+1)
	copy(big, pngHeader)
	_, err := svc.SaveImage(context.Background(), "gallery", buildFileHeader(t, "huge.png", big))
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadServiceSaveDocumentSkipsImageSniff(t *testing.T) {
	svc := newUploadFixture(t, 10)

	name, err := svc.SaveDocument(context.Background(), "materials", buildFileHeader(t, "syllabus.pdf", []byte("%PDF-1.7 minimal")))
	require.NoError(t, err)
	require.NotEmpty(t, name)

	_, err = svc.SaveDocument(context.Background(), "materials", buildFileHeader(t, "syllabus.txt", []byte("plain")))
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
}
