package telegram

import (
	"io"
	"os"
	"path/filepath"
)

// DefaultContentType используется, если у InputFile не задан ContentType.
const DefaultContentType = "application/octet-stream"

// FileSource параметр-файл метода отправки: либо InputFile (загрузка), либо FileID (уже на сервере).
type FileSource interface {
	fileSource()
}

// FileID ссылка на файл, уже загруженный на серверы Telegram.
type FileID string

func (FileID) fileSource() {}

// InputFile локальный файл для загрузки через multipart/form-data.
// Файл открывается только при кодировании запроса.
type InputFile struct {
	Path        string
	ContentType string
	// Name имя файла в запросе; по умолчанию базовое имя Path.
	Name string
	// Reader, если задан, читается вместо файла по Path.
	Reader io.Reader
}

func (InputFile) fileSource() {}

// NewInputFile создаёт InputFile. Необязательный contentType переопределяет DefaultContentType.
func NewInputFile(path string, contentType ...string) InputFile {
	f := InputFile{Path: path}
	if len(contentType) > 0 {
		f.ContentType = contentType[0]
	}
	return f
}

func (f InputFile) contentType() string {
	if f.ContentType == "" {
		return DefaultContentType
	}
	return f.ContentType
}

func (f InputFile) fileName() string {
	if f.Name != "" {
		return f.Name
	}
	if f.Path != "" {
		return filepath.Base(f.Path)
	}
	return "file"
}

// copyTo однократно переносит содержимое файла в w.
func (f InputFile) copyTo(w io.Writer) error {
	r := f.Reader
	if r == nil {
		fd, err := os.Open(f.Path)
		if err != nil {
			return &IOError{Name: f.fileName(), Err: err}
		}
		defer fd.Close()
		r = fd
	}
	if _, err := io.Copy(w, r); err != nil {
		return &IOError{Name: f.fileName(), Err: err}
	}
	return nil
}
