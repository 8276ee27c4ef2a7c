package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
)

// MaxImageBytes caps profile picture uploads at 2 MiB.
const MaxImageBytes = 2 << 20

var (
	ErrImageTooLarge = errors.New("image larger than 2 MiB")
	ErrBadImageType  = errors.New("only JPEG and PNG images are accepted")
)

// SniffImageExt decides the image type from the leading bytes, not the
// client-declared Content-Type.
func SniffImageExt(head []byte) (ext, contentType string, ok bool) {
	switch ct := http.DetectContentType(head); ct {
	case "image/jpeg":
		return ".jpg", ct, true
	case "image/png":
		return ".png", ct, true
	default:
		return "", "", false
	}
}

// SaveImage validates an uploaded image (size, sniffed type) and writes
// it to st under a key derived from nameHint. Nothing is written when
// validation fails.
func SaveImage(ctx context.Context, st Storage, fh *multipart.FileHeader, nameHint string) (PutResult, error) {
	if fh.Size > MaxImageBytes {
		return PutResult{}, ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return PutResult{}, err
	}

	ext, contentType, ok := SniffImageExt(head[:n])
	if !ok {
		return PutResult{}, ErrBadImageType
	}

	if strings.TrimSpace(nameHint) == "" {
		nameHint = "picture"
	}
	body := io.MultiReader(bytes.NewReader(head[:n]), f)
	return st.Put(ctx, body, PutInput{
		Filename:    nameHint + ext,
		ContentType: contentType,
		Size:        fh.Size,
	})
}

// CanonicalPath is the single stored-path format for profile pictures.
func CanonicalPath(key string) string {
	if key == "" {
		return ""
	}
	return "uploads/" + path.Base(key)
}

// NormalizeStoredPath maps legacy variants ("../uploads/x.png",
// "./uploads/x.png") onto the canonical form so readers never branch
// on two formats.
func NormalizeStoredPath(p string) string {
	p = strings.TrimSpace(p)
	for {
		switch {
		case strings.HasPrefix(p, "../"):
			p = strings.TrimPrefix(p, "../")
		case strings.HasPrefix(p, "./"):
			p = strings.TrimPrefix(p, "./")
		default:
			if p == "" {
				return ""
			}
			return CanonicalPath(p)
		}
	}
}
