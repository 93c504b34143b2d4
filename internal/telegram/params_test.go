package telegram

import (
	"io"
	"io/fs"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formPart struct {
	field       string
	fileName    string
	contentType string
	data        string
}

func readMultipart(t *testing.T, body io.Reader, contentType string) (map[string]string, []formPart) {
	t.Helper()

	mediaType, mparams, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string]string{}
	var files []formPart

	r := multipart.NewReader(body, mparams["boundary"])
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		data, err := io.ReadAll(part)
		require.NoError(t, err)

		if part.FileName() == "" {
			fields[part.FormName()] = string(data)
			continue
		}
		files = append(files, formPart{
			field:       part.FormName(),
			fileName:    part.FileName(),
			contentType: part.Header.Get("Content-Type"),
			data:        string(data),
		})
	}
	return fields, files
}

func TestParams_encodeURLEncoded(t *testing.T) {
	p := newParams()
	p.setInt("chat_id", 7)
	p.set("text", "hi there")
	p.setBool("disable_web_page_preview", false)
	p.setOptInt("reply_to_message_id", 0)
	p.setOptString("caption", "")
	require.NoError(t, p.setFile("photo", FileID("AgADBAAD")))

	body, contentType, err := p.encode()
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	values, err := url.ParseQuery(string(raw))
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"chat_id":                  {"7"},
		"text":                     {"hi there"},
		"disable_web_page_preview": {"false"},
		"photo":                    {"AgADBAAD"},
	}, values)
}

func TestParams_encodeMultipart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bender_pic.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0644))

	p := newParams()
	p.setInt("chat_id", 7)
	p.setOptString("caption", "bite my shiny metal")
	require.NoError(t, p.setFile("photo", NewInputFile(path, "image/jpeg")))

	body, contentType, err := p.encode()
	require.NoError(t, err)

	fields, files := readMultipart(t, body, contentType)
	assert.Equal(t, map[string]string{"chat_id": "7", "caption": "bite my shiny metal"}, fields)
	require.Len(t, files, 1)
	assert.Equal(t, formPart{
		field:       "photo",
		fileName:    "bender_pic.jpg",
		contentType: "image/jpeg",
		data:        "jpeg bytes",
	}, files[0])
}

func TestParams_encodeMultipartDefaults(t *testing.T) {
	t.Run("default content type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "saluton_amiko.ogg")
		require.NoError(t, os.WriteFile(path, []byte("ogg"), 0644))

		p := newParams()
		require.NoError(t, p.setFile("audio", NewInputFile(path)))

		body, contentType, err := p.encode()
		require.NoError(t, err)
		_, files := readMultipart(t, body, contentType)
		require.Len(t, files, 1)
		assert.Equal(t, DefaultContentType, files[0].contentType)
	})

	t.Run("reader instead of path", func(t *testing.T) {
		p := newParams()
		require.NoError(t, p.setFile("document", &InputFile{
			Name:        "report.txt",
			ContentType: "text/plain",
			Reader:      strings.NewReader("hello"),
		}))

		body, contentType, err := p.encode()
		require.NoError(t, err)
		_, files := readMultipart(t, body, contentType)
		require.Len(t, files, 1)
		assert.Equal(t, "report.txt", files[0].fileName)
		assert.Equal(t, "hello", files[0].data)
	})
}

func TestParams_encodeIOFailure(t *testing.T) {
	p := newParams()
	require.NoError(t, p.setFile("photo", NewInputFile(filepath.Join(t.TempDir(), "missing.jpg"))))

	body, _, err := p.encode()
	assert.Nil(t, body)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "missing.jpg", ioErr.Name)
}

func TestParams_encodeReaderFailure(t *testing.T) {
	readErr := errors.New("disk gone")
	p := newParams()
	require.NoError(t, p.setFile("document", &InputFile{Name: "report.pdf", Reader: iotest.ErrReader(readErr)}))

	_, _, err := p.encode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.True(t, errors.Is(err, readErr))
	assert.Contains(t, err.Error(), "report.pdf")
}

func TestParams_setFile(t *testing.T) {
	p := newParams()

	assert.Error(t, p.setFile("photo", nil))
	assert.Error(t, p.setFile("photo", (*InputFile)(nil)))
	assert.False(t, p.multipart())
}

func TestParams_setMarkup(t *testing.T) {
	tests := []struct {
		name   string
		markup ReplyMarkup
		want   string
	}{
		{
			name:   "keyboard",
			markup: ReplyKeyboardMarkup{Keyboard: [][]string{{"yes", "no"}}, OneTimeKeyboard: true},
			want:   `{"keyboard":[["yes","no"]],"one_time_keyboard":true}`,
		},
		{
			name:   "hide keyboard",
			markup: ReplyKeyboardHide{},
			want:   `{"hide_keyboard":true}`,
		},
		{
			name:   "force reply",
			markup: ForceReply{Selective: true},
			want:   `{"force_reply":true,"selective":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParams()
			require.NoError(t, p.setMarkup(tt.markup))
			assert.JSONEq(t, tt.want, p.values.Get("reply_markup"))
		})
	}

	p := newParams()
	require.NoError(t, p.setMarkup(nil))
	assert.Empty(t, p.values.Get("reply_markup"))
}
