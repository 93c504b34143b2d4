package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maine/telebot/internal/telegram"
)

// print выводит v как JSON при --json, иначе вызывает human.
func (a *app) print(cmd *cobra.Command, v any, human func(p *printer)) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(newPrinter(out))
	return nil
}

type printer struct {
	w     io.Writer
	bold  *color.Color
	dim   *color.Color
	green *color.Color
	red   *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:     w,
		bold:  color.New(color.Bold),
		dim:   color.New(color.Faint),
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
	}
}

func (p *printer) field(name string, value any) {
	p.dim.Fprintf(p.w, "  %-14s", name+":")
	fmt.Fprintln(p.w, value)
}

func (p *printer) user(u telegram.User) {
	p.bold.Fprintf(p.w, "%s\n", displayName(u))
	p.field("id", u.ID)
	if u.Username != nil {
		p.field("username", "@"+*u.Username)
	}
}

func (p *printer) message(m telegram.Message) {
	p.bold.Fprintf(p.w, "Message %d", m.MessageID)
	fmt.Fprintf(p.w, " in chat %d\n", m.Chat.ID)
	p.field("date", time.Unix(m.Date, 0).UTC().Format(time.DateTime))
	if m.From != nil {
		p.field("from", displayName(*m.From))
	}
	if m.ForwardFrom != nil {
		p.field("forwarded", displayName(*m.ForwardFrom))
	}
	if m.Text != nil {
		p.field("text", *m.Text)
	}
	if m.Caption != nil {
		p.field("caption", *m.Caption)
	}
	for _, a := range attachments(m) {
		p.field(a[0], a[1])
	}
}

func (p *printer) updates(updates []telegram.Update) {
	if len(updates) == 0 {
		p.dim.Fprintln(p.w, "No pending updates")
		return
	}
	for _, u := range updates {
		p.green.Fprintf(p.w, "Update %d\n", u.UpdateID)
		if u.Message != nil {
			p.message(*u.Message)
		}
	}
	p.dim.Fprintf(p.w, "Next offset: %d\n", updates[len(updates)-1].UpdateID+1)
}

func (p *printer) profilePhotos(photos telegram.UserProfilePhotos) {
	p.bold.Fprintf(p.w, "%d profile photos\n", photos.TotalCount)
	for i, sizes := range photos.Photos {
		ids := make([]string, 0, len(sizes))
		for _, s := range sizes {
			ids = append(ids, fmt.Sprintf("%s (%dx%d)", s.FileID, s.Width, s.Height))
		}
		p.field(fmt.Sprintf("#%d", i+1), strings.Join(ids, ", "))
	}
}

func (p *printer) ok(ok bool) {
	if ok {
		p.green.Fprintln(p.w, "OK")
		return
	}
	p.red.Fprintln(p.w, "Not confirmed")
}

func (p *printer) broadcast(sent, total int) {
	c := p.green
	if sent < total {
		c = p.red
	}
	c.Fprintf(p.w, "Sent %d/%d\n", sent, total)
}

func displayName(u telegram.User) string {
	name := u.FirstName
	if u.LastName != nil {
		name += " " + *u.LastName
	}
	return name
}

// attachments перечисляет вложения сообщения парами "тип" - "file_id".
func attachments(m telegram.Message) [][2]string {
	var res [][2]string
	if len(m.Photo) > 0 {
		res = append(res, [2]string{"photo", m.Photo[len(m.Photo)-1].FileID})
	}
	if m.Audio != nil {
		res = append(res, [2]string{"audio", m.Audio.FileID})
	}
	if m.Document != nil {
		res = append(res, [2]string{"document", m.Document.FileID})
	}
	if m.Sticker != nil {
		res = append(res, [2]string{"sticker", m.Sticker.FileID})
	}
	if m.Video != nil {
		res = append(res, [2]string{"video", m.Video.FileID})
	}
	if m.Location != nil {
		res = append(res, [2]string{"location", fmt.Sprintf("%.5f, %.5f", m.Location.Latitude, m.Location.Longitude)})
	}
	if m.Contact != nil {
		res = append(res, [2]string{"contact", m.Contact.PhoneNumber})
	}
	return res
}
