package telegram

// Необязательные поля представлены указателями: nil означает, что поле отсутствовало в ответе.

// Update описывает элемент ответа getUpdates.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message представляет сообщение.
type Message struct {
	MessageID      int64       `json:"message_id"`
	From           *User       `json:"from,omitempty"`
	Date           int64       `json:"date"`
	Chat           Chat        `json:"chat"`
	ForwardFrom    *User       `json:"forward_from,omitempty"`
	ForwardDate    *int64      `json:"forward_date,omitempty"`
	ReplyToMessage *Message    `json:"reply_to_message,omitempty"`
	Text           *string     `json:"text,omitempty"`
	Caption        *string     `json:"caption,omitempty"`
	Audio          *Audio      `json:"audio,omitempty"`
	Document       *Document   `json:"document,omitempty"`
	Photo          []PhotoSize `json:"photo,omitempty"`
	Sticker        *Sticker    `json:"sticker,omitempty"`
	Video          *Video      `json:"video,omitempty"`
	Contact        *Contact    `json:"contact,omitempty"`
	Location       *Location   `json:"location,omitempty"`
}

// User информация о пользователе или боте.
type User struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
}

// Chat описывает чат (личный/групповой).
type Chat struct {
	ID        int64   `json:"id"`
	Type      *string `json:"type,omitempty"`
	Title     *string `json:"title,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// PhotoSize один из размеров фотографии или превью.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize *int64 `json:"file_size,omitempty"`
}

// Audio аудиофайл.
type Audio struct {
	FileID   string  `json:"file_id"`
	Duration int     `json:"duration"`
	MimeType *string `json:"mime_type,omitempty"`
	FileSize *int64  `json:"file_size,omitempty"`
}

// Document произвольный файл.
type Document struct {
	FileID   string     `json:"file_id"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	FileName *string    `json:"file_name,omitempty"`
	MimeType *string    `json:"mime_type,omitempty"`
	FileSize *int64     `json:"file_size,omitempty"`
}

// Sticker стикер.
type Sticker struct {
	FileID   string     `json:"file_id"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	FileSize *int64     `json:"file_size,omitempty"`
}

// Video видеофайл.
type Video struct {
	FileID   string     `json:"file_id"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Duration int        `json:"duration"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	MimeType *string    `json:"mime_type,omitempty"`
	FileSize *int64     `json:"file_size,omitempty"`
	Caption  *string    `json:"caption,omitempty"`
}

// Contact телефонный контакт.
type Contact struct {
	PhoneNumber string  `json:"phone_number"`
	FirstName   string  `json:"first_name"`
	LastName    *string `json:"last_name,omitempty"`
	UserID      *int64  `json:"user_id,omitempty"`
}

// Location точка на карте.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// UserProfilePhotos ответ getUserProfilePhotos.
type UserProfilePhotos struct {
	TotalCount int           `json:"total_count"`
	Photos     [][]PhotoSize `json:"photos"`
}
