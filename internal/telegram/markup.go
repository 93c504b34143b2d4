package telegram

import "encoding/json"

// ReplyMarkup дополнительные параметры интерфейса, передаются полем reply_markup как JSON.
type ReplyMarkup interface {
	replyMarkup()
}

// ReplyKeyboardMarkup пользовательская клавиатура с вариантами ответа.
type ReplyKeyboardMarkup struct {
	Keyboard        [][]string `json:"keyboard"`
	ResizeKeyboard  bool       `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard bool       `json:"one_time_keyboard,omitempty"`
	Selective       bool       `json:"selective,omitempty"`
}

// ReplyKeyboardHide убирает ранее показанную клавиатуру.
type ReplyKeyboardHide struct {
	Selective bool `json:"selective,omitempty"`
}

// ForceReply показывает пользователю интерфейс ответа на сообщение бота.
type ForceReply struct {
	Selective bool `json:"selective,omitempty"`
}

func (ReplyKeyboardMarkup) replyMarkup() {}
func (ReplyKeyboardHide) replyMarkup()   {}
func (ForceReply) replyMarkup()          {}

func (h ReplyKeyboardHide) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HideKeyboard bool `json:"hide_keyboard"`
		Selective    bool `json:"selective,omitempty"`
	}{true, h.Selective})
}

func (f ForceReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ForceReply bool `json:"force_reply"`
		Selective  bool `json:"selective,omitempty"`
	}{true, f.Selective})
}

// ChatAction статус, показываемый собеседнику через sendChatAction.
type ChatAction string

const (
	ChatActionTyping         ChatAction = "typing"
	ChatActionUploadPhoto    ChatAction = "upload_photo"
	ChatActionRecordVideo    ChatAction = "record_video"
	ChatActionUploadVideo    ChatAction = "upload_video"
	ChatActionRecordAudio    ChatAction = "record_audio"
	ChatActionUploadAudio    ChatAction = "upload_audio"
	ChatActionUploadDocument ChatAction = "upload_document"
	ChatActionFindLocation   ChatAction = "find_location"
)
