package telegram

import (
	"github.com/go-faster/jx"
)

func optional[T any](d *jx.Decoder, decode func(*jx.Decoder) (T, error)) (*T, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	v, err := decode(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeSlice[T any](d *jx.Decoder, decode func(*jx.Decoder) (T, error)) ([]T, error) {
	out := make([]T, 0)
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := decode(d)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeUpdates(d *jx.Decoder) ([]Update, error) {
	updates, err := decodeSlice(d, decodeUpdate)
	if err != nil {
		return nil, fieldErr("Update", "", err)
	}
	return updates, nil
}

func decodeUpdate(d *jx.Decoder) (Update, error) {
	var (
		u     Update
		hasID bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "update_id":
			u.UpdateID, err = d.Int64()
			hasID = err == nil
		case "message":
			u.Message, err = optional(d, decodeMessage)
		default:
			return d.Skip()
		}
		return fieldErr("Update", string(key), err)
	})
	if err != nil {
		return Update{}, fieldErr("Update", "", err)
	}
	if !hasID {
		return Update{}, missing("Update", "update_id")
	}
	return u, nil
}

func decodeMessage(d *jx.Decoder) (Message, error) {
	var (
		m                       Message
		hasID, hasDate, hasChat bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "message_id":
			m.MessageID, err = d.Int64()
			hasID = err == nil
		case "date":
			m.Date, err = d.Int64()
			hasDate = err == nil
		case "chat":
			m.Chat, err = decodeChat(d)
			hasChat = err == nil
		case "from":
			m.From, err = optional(d, decodeUser)
		case "forward_from":
			m.ForwardFrom, err = optional(d, decodeUser)
		case "forward_date":
			m.ForwardDate, err = optional(d, (*jx.Decoder).Int64)
		case "reply_to_message":
			m.ReplyToMessage, err = optional(d, decodeMessage)
		case "text":
			m.Text, err = optional(d, (*jx.Decoder).Str)
		case "caption":
			m.Caption, err = optional(d, (*jx.Decoder).Str)
		case "audio":
			m.Audio, err = optional(d, decodeAudio)
		case "document":
			m.Document, err = optional(d, decodeDocument)
		case "photo":
			if d.Next() == jx.Null {
				return d.Null()
			}
			m.Photo, err = decodeSlice(d, decodePhotoSize)
		case "sticker":
			m.Sticker, err = optional(d, decodeSticker)
		case "video":
			m.Video, err = optional(d, decodeVideo)
		case "contact":
			m.Contact, err = optional(d, decodeContact)
		case "location":
			m.Location, err = optional(d, decodeLocation)
		default:
			return d.Skip()
		}
		return fieldErr("Message", string(key), err)
	})
	switch {
	case err != nil:
		return Message{}, fieldErr("Message", "", err)
	case !hasID:
		return Message{}, missing("Message", "message_id")
	case !hasDate:
		return Message{}, missing("Message", "date")
	case !hasChat:
		return Message{}, missing("Message", "chat")
	}
	return m, nil
}

func decodeUser(d *jx.Decoder) (User, error) {
	var (
		u                   User
		hasID, hasFirstName bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			u.ID, err = d.Int64()
			hasID = err == nil
		case "first_name":
			u.FirstName, err = d.Str()
			hasFirstName = err == nil
		case "last_name":
			u.LastName, err = optional(d, (*jx.Decoder).Str)
		case "username":
			u.Username, err = optional(d, (*jx.Decoder).Str)
		default:
			return d.Skip()
		}
		return fieldErr("User", string(key), err)
	})
	switch {
	case err != nil:
		return User{}, fieldErr("User", "", err)
	case !hasID:
		return User{}, missing("User", "id")
	case !hasFirstName:
		return User{}, missing("User", "first_name")
	}
	return u, nil
}

func decodeChat(d *jx.Decoder) (Chat, error) {
	var (
		c     Chat
		hasID bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			c.ID, err = d.Int64()
			hasID = err == nil
		case "type":
			c.Type, err = optional(d, (*jx.Decoder).Str)
		case "title":
			c.Title, err = optional(d, (*jx.Decoder).Str)
		case "username":
			c.Username, err = optional(d, (*jx.Decoder).Str)
		case "first_name":
			c.FirstName, err = optional(d, (*jx.Decoder).Str)
		case "last_name":
			c.LastName, err = optional(d, (*jx.Decoder).Str)
		default:
			return d.Skip()
		}
		return fieldErr("Chat", string(key), err)
	})
	if err != nil {
		return Chat{}, fieldErr("Chat", "", err)
	}
	if !hasID {
		return Chat{}, missing("Chat", "id")
	}
	return c, nil
}

func decodePhotoSize(d *jx.Decoder) (PhotoSize, error) {
	var (
		p                          PhotoSize
		hasID, hasWidth, hasHeight bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "file_id":
			p.FileID, err = d.Str()
			hasID = err == nil
		case "width":
			p.Width, err = d.Int()
			hasWidth = err == nil
		case "height":
			p.Height, err = d.Int()
			hasHeight = err == nil
		case "file_size":
			p.FileSize, err = optional(d, (*jx.Decoder).Int64)
		default:
			return d.Skip()
		}
		return fieldErr("PhotoSize", string(key), err)
	})
	switch {
	case err != nil:
		return PhotoSize{}, fieldErr("PhotoSize", "", err)
	case !hasID:
		return PhotoSize{}, missing("PhotoSize", "file_id")
	case !hasWidth:
		return PhotoSize{}, missing("PhotoSize", "width")
	case !hasHeight:
		return PhotoSize{}, missing("PhotoSize", "height")
	}
	return p, nil
}

func decodeAudio(d *jx.Decoder) (Audio, error) {
	var (
		a                  Audio
		hasID, hasDuration bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "file_id":
			a.FileID, err = d.Str()
			hasID = err == nil
		case "duration":
			a.Duration, err = d.Int()
			hasDuration = err == nil
		case "mime_type":
			a.MimeType, err = optional(d, (*jx.Decoder).Str)
		case "file_size":
			a.FileSize, err = optional(d, (*jx.Decoder).Int64)
		default:
			return d.Skip()
		}
		return fieldErr("Audio", string(key), err)
	})
	switch {
	case err != nil:
		return Audio{}, fieldErr("Audio", "", err)
	case !hasID:
		return Audio{}, missing("Audio", "file_id")
	case !hasDuration:
		return Audio{}, missing("Audio", "duration")
	}
	return a, nil
}

func decodeDocument(d *jx.Decoder) (Document, error) {
	var (
		doc   Document
		hasID bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "file_id":
			doc.FileID, err = d.Str()
			hasID = err == nil
		case "thumb":
			doc.Thumb, err = optional(d, decodePhotoSize)
		case "file_name":
			doc.FileName, err = optional(d, (*jx.Decoder).Str)
		case "mime_type":
			doc.MimeType, err = optional(d, (*jx.Decoder).Str)
		case "file_size":
			doc.FileSize, err = optional(d, (*jx.Decoder).Int64)
		default:
			return d.Skip()
		}
		return fieldErr("Document", string(key), err)
	})
	if err != nil {
		return Document{}, fieldErr("Document", "", err)
	}
	if !hasID {
		return Document{}, missing("Document", "file_id")
	}
	return doc, nil
}

func decodeSticker(d *jx.Decoder) (Sticker, error) {
	var (
		s                          Sticker
		hasID, hasWidth, hasHeight bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "file_id":
			s.FileID, err = d.Str()
			hasID = err == nil
		case "width":
			s.Width, err = d.Int()
			hasWidth = err == nil
		case "height":
			s.Height, err = d.Int()
			hasHeight = err == nil
		case "thumb":
			s.Thumb, err = optional(d, decodePhotoSize)
		case "file_size":
			s.FileSize, err = optional(d, (*jx.Decoder).Int64)
		default:
			return d.Skip()
		}
		return fieldErr("Sticker", string(key), err)
	})
	switch {
	case err != nil:
		return Sticker{}, fieldErr("Sticker", "", err)
	case !hasID:
		return Sticker{}, missing("Sticker", "file_id")
	case !hasWidth:
		return Sticker{}, missing("Sticker", "width")
	case !hasHeight:
		return Sticker{}, missing("Sticker", "height")
	}
	return s, nil
}

func decodeVideo(d *jx.Decoder) (Video, error) {
	var (
		v                                       Video
		hasID, hasWidth, hasHeight, hasDuration bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "file_id":
			v.FileID, err = d.Str()
			hasID = err == nil
		case "width":
			v.Width, err = d.Int()
			hasWidth = err == nil
		case "height":
			v.Height, err = d.Int()
			hasHeight = err == nil
		case "duration":
			v.Duration, err = d.Int()
			hasDuration = err == nil
		case "thumb":
			v.Thumb, err = optional(d, decodePhotoSize)
		case "mime_type":
			v.MimeType, err = optional(d, (*jx.Decoder).Str)
		case "file_size":
			v.FileSize, err = optional(d, (*jx.Decoder).Int64)
		case "caption":
			v.Caption, err = optional(d, (*jx.Decoder).Str)
		default:
			return d.Skip()
		}
		return fieldErr("Video", string(key), err)
	})
	switch {
	case err != nil:
		return Video{}, fieldErr("Video", "", err)
	case !hasID:
		return Video{}, missing("Video", "file_id")
	case !hasWidth:
		return Video{}, missing("Video", "width")
	case !hasHeight:
		return Video{}, missing("Video", "height")
	case !hasDuration:
		return Video{}, missing("Video", "duration")
	}
	return v, nil
}

func decodeContact(d *jx.Decoder) (Contact, error) {
	var (
		c                      Contact
		hasPhone, hasFirstName bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "phone_number":
			c.PhoneNumber, err = d.Str()
			hasPhone = err == nil
		case "first_name":
			c.FirstName, err = d.Str()
			hasFirstName = err == nil
		case "last_name":
			c.LastName, err = optional(d, (*jx.Decoder).Str)
		case "user_id":
			c.UserID, err = optional(d, (*jx.Decoder).Int64)
		default:
			return d.Skip()
		}
		return fieldErr("Contact", string(key), err)
	})
	switch {
	case err != nil:
		return Contact{}, fieldErr("Contact", "", err)
	case !hasPhone:
		return Contact{}, missing("Contact", "phone_number")
	case !hasFirstName:
		return Contact{}, missing("Contact", "first_name")
	}
	return c, nil
}

func decodeLocation(d *jx.Decoder) (Location, error) {
	var (
		l              Location
		hasLon, hasLat bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "longitude":
			l.Longitude, err = d.Float64()
			hasLon = err == nil
		case "latitude":
			l.Latitude, err = d.Float64()
			hasLat = err == nil
		default:
			return d.Skip()
		}
		return fieldErr("Location", string(key), err)
	})
	switch {
	case err != nil:
		return Location{}, fieldErr("Location", "", err)
	case !hasLon:
		return Location{}, missing("Location", "longitude")
	case !hasLat:
		return Location{}, missing("Location", "latitude")
	}
	return l, nil
}

func decodeUserProfilePhotos(d *jx.Decoder) (UserProfilePhotos, error) {
	var (
		p                   UserProfilePhotos
		hasTotal, hasPhotos bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "total_count":
			p.TotalCount, err = d.Int()
			hasTotal = err == nil
		case "photos":
			p.Photos, err = decodeSlice(d, func(d *jx.Decoder) ([]PhotoSize, error) {
				return decodeSlice(d, decodePhotoSize)
			})
			hasPhotos = err == nil
		default:
			return d.Skip()
		}
		return fieldErr("UserProfilePhotos", string(key), err)
	})
	switch {
	case err != nil:
		return UserProfilePhotos{}, fieldErr("UserProfilePhotos", "", err)
	case !hasTotal:
		return UserProfilePhotos{}, missing("UserProfilePhotos", "total_count")
	case !hasPhotos:
		return UserProfilePhotos{}, missing("UserProfilePhotos", "photos")
	}
	return p, nil
}

func decodeTrue(d *jx.Decoder) (bool, error) {
	v, err := d.Bool()
	if err != nil {
		return false, fieldErr("result", "", err)
	}
	return v, nil
}
