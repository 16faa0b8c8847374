package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/tutorzindia/site/services"
)

type upload struct {
	services.UploadFile
	file multipart.File
}

func (u *upload) close() {
	u.file.Close()
}

// readUpload reads the "file" part of a multipart request. The body is
// capped at maxSize plus a little room for the other fields.
func readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (*upload, error) {
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, errors.New("file too large or invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("file is required")
	}

	return &upload{
		UploadFile: services.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		},
		file: file,
	}, nil
}
