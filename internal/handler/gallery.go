package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pkordes/triplog/internal/domain"
)

// uploadField is the multipart field carrying the image files.
const uploadField = "files"

// multipartMemory is the part of a multipart upload held in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// UploadResponse is the body of POST /trips/{id}/images.
type UploadResponse struct {
	Added  int    `json:"added"`
	Failed string `json:"failed,omitempty"`
}

// PhotoResponse is the body of GET /trips/{id}/images/{index}.
type PhotoResponse struct {
	Index   int    `json:"index"`
	Count   int    `json:"count"`
	DataURL string `json:"data_url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Prev    int    `json:"prev"`
	Next    int    `json:"next"`
}

// UploadImages handles POST /trips/{id}/images with a multipart body.
// Every file in the "files" field is downscaled and appended in upload order.
// Files that are not decodable images are skipped and reported in "failed";
// the request only fails with 400 when none could be stored.
func (s *Server) UploadImages(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	uploads, err := readUploads(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	added, err := s.gallery.AddImages(r.Context(), id, uploads)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, UploadResponse{Added: added})
	case added > 0 && errors.Is(err, domain.ErrMalformedInput):
		writeJSON(w, http.StatusCreated, UploadResponse{Added: added, Failed: trimOp(err.Error())})
	default:
		s.writeError(w, r, err, "trip not found")
	}
}

// GetImage handles GET /trips/{id}/images/{index}.
func (s *Server) GetImage(w http.ResponseWriter, r *http.Request) {
	id, index, err := imageParams(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	p, err := s.gallery.Photo(r.Context(), id, index)
	if err != nil {
		s.writeError(w, r, err, "image not found")
		return
	}
	writeJSON(w, http.StatusOK, PhotoResponse{
		Index:   p.Index,
		Count:   p.Count,
		DataURL: p.DataURL,
		Width:   p.Width,
		Height:  p.Height,
		Prev:    p.Prev,
		Next:    p.Next,
	})
}

// DeleteImage handles DELETE /trips/{id}/images/{index}. Always 204 once the
// request is well formed.
func (s *Server) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, index, err := imageParams(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if err := s.gallery.DeleteImage(r.Context(), id, index); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.writeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func imageParams(r *http.Request) (string, int, error) {
	id, err := tripID(r)
	if err != nil {
		return "", 0, err
	}
	var index int
	if err := pathParam(r, "index", &index); err != nil {
		return "", 0, err
	}
	return id, index, nil
}

// readUploads returns the contents of every file in the upload field.
func readUploads(r *http.Request) ([][]byte, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: expected a multipart form: %v", domain.ErrMalformedInput, err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no files in field %q", domain.ErrValidation, uploadField)
	}
	out := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		out = append(out, b)
	}
	return out, nil
}
