package telegram

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const formContentType = "application/x-www-form-urlencoded"

type filePart struct {
	field string
	file  InputFile
}

// params параметры одного вызова. Наличие хотя бы одного файла переключает тело на multipart.
type params struct {
	values url.Values
	files  []filePart
	// longPoll продлевает таймаут вызова на время, которое сервер держит соединение.
	longPoll time.Duration
}

func newParams() *params {
	return &params{values: url.Values{}}
}

func (p *params) set(name, value string) {
	p.values.Set(name, value)
}

func (p *params) setInt(name string, v int64) {
	p.values.Set(name, strconv.FormatInt(v, 10))
}

// setOptInt пропускает нулевое значение, чтобы сервер применил своё значение по умолчанию.
func (p *params) setOptInt(name string, v int64) {
	if v != 0 {
		p.setInt(name, v)
	}
}

func (p *params) setOptString(name, v string) {
	if v != "" {
		p.set(name, v)
	}
}

func (p *params) setBool(name string, v bool) {
	p.values.Set(name, strconv.FormatBool(v))
}

func (p *params) setFloat(name string, v float64) {
	p.values.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
}

func (p *params) setMarkup(markup ReplyMarkup) error {
	if markup == nil {
		return nil
	}
	data, err := json.Marshal(markup)
	if err != nil {
		return errors.Wrap(err, "marshal reply_markup")
	}
	p.set("reply_markup", string(data))
	return nil
}

func (p *params) setFile(name string, src FileSource) error {
	switch f := src.(type) {
	case FileID:
		p.set(name, string(f))
	case InputFile:
		p.files = append(p.files, filePart{field: name, file: f})
	case *InputFile:
		if f == nil {
			return errors.Errorf("%s: nil input file", name)
		}
		p.files = append(p.files, filePart{field: name, file: *f})
	default:
		return errors.Errorf("%s: unsupported file source %T", name, src)
	}
	return nil
}

func (p *params) multipart() bool {
	return len(p.files) > 0
}

// encode возвращает тело запроса и его Content-Type.
// Для multipart тело собирается целиком до запроса, поэтому ошибка чтения файла не порождает сетевой активности.
func (p *params) encode() (io.Reader, string, error) {
	if !p.multipart() {
		return bytes.NewBufferString(p.values.Encode()), formContentType, nil
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, p.values.Get(k)); err != nil {
			return nil, "", errors.Wrapf(err, "write field %s", k)
		}
	}

	for _, part := range p.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     part.field,
			"filename": part.file.fileName(),
		}))
		h.Set("Content-Type", part.file.contentType())

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "create part %s", part.field)
		}
		if err := part.file.copyTo(pw); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}
	return &body, w.FormDataContentType(), nil
}
