package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/spacesedan/captionflow/internal/models"
)

var errUnsupportedImage = errors.New("uploaded image must be a PNG or JPEG file")

// readImage loads an uploaded file and sniffs its MIME type from the bytes
// rather than trusting the client-provided header.
func readImage(header *multipart.FileHeader) (*models.ImageInput, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errors.New("unable to read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("unable to read uploaded image")
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, errUnsupportedImage
	}
	if kind != matchers.TypePng && kind != matchers.TypeJpeg {
		return nil, errUnsupportedImage
	}

	return &models.ImageInput{
		Data:     data,
		MimeType: kind.MIME.Value,
	}, nil
}
