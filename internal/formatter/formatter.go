package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxMessageLength максимальная длина текста сообщения в Telegram (4096 символов).
	MaxMessageLength = 4096
	// headerTemplate шаблон для нумерации сообщений
	headerTemplate = "(%d/%d)\n"
	// headerReserve место под заголовок нумерации
	headerReserve = 16
	// ellipsis символы, добавляемые при обрезке
	ellipsis = "..."

	defaultMaxMessages = 5
	paragraphSeparator = "\n\n"
	lineSeparator      = "\n"
)

// Splitter разбивает длинный текст на сообщения, укладывающиеся в лимит Telegram.
// Текст режется по абзацам, затем по строкам и только в крайнем случае посреди строки.
type Splitter struct {
	maxLength   int
	maxMessages int
}

// NewSplitter создаёт новый экземпляр. maxMessages <= 0 означает значение по умолчанию (5).
func NewSplitter(maxMessages int) *Splitter {
	if maxMessages <= 0 {
		maxMessages = defaultMaxMessages
	}
	return &Splitter{
		maxLength:   MaxMessageLength,
		maxMessages: maxMessages,
	}
}

// Split возвращает части текста. Если частей больше одной, каждая начинается с "(i/n)".
// Лишние части отбрасываются, последняя оставшаяся заканчивается многоточием.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= s.maxLength {
		return []string{text}
	}

	budget := s.maxLength - headerReserve
	p := &packer{budget: budget}

	for _, block := range strings.Split(text, paragraphSeparator) {
		if utf8.RuneCountInString(block) <= budget {
			p.add(block, paragraphSeparator)
			continue
		}

		// Абзац не помещается целиком: режем построчно
		for i, line := range strings.Split(block, lineSeparator) {
			sep := lineSeparator
			if i == 0 {
				sep = paragraphSeparator
			}
			if utf8.RuneCountInString(line) <= budget {
				p.add(line, sep)
				continue
			}
			for j, chunk := range chunkRunes(line, budget) {
				if j > 0 {
					sep = ""
				}
				p.add(chunk, sep)
			}
		}
	}
	p.flush()

	parts := p.parts
	if len(parts) > s.maxMessages {
		parts = parts[:s.maxMessages]
		last := []rune(parts[len(parts)-1])
		if len(last)+len(ellipsis) > budget {
			last = last[:budget-len(ellipsis)]
		}
		parts[len(parts)-1] = string(last) + ellipsis
	}

	if len(parts) > 1 {
		for i := range parts {
			parts[i] = fmt.Sprintf(headerTemplate, i+1, len(parts)) + parts[i]
		}
	}
	return parts
}

// packer жадно собирает куски в сообщения не длиннее budget символов.
type packer struct {
	budget int
	parts  []string
	cur    strings.Builder
	curLen int
}

func (p *packer) add(piece, sep string) {
	pieceLen := utf8.RuneCountInString(piece)
	if p.curLen > 0 && p.curLen+utf8.RuneCountInString(sep)+pieceLen > p.budget {
		p.flush()
	}
	if p.curLen > 0 {
		p.cur.WriteString(sep)
		p.curLen += utf8.RuneCountInString(sep)
	}
	p.cur.WriteString(piece)
	p.curLen += pieceLen
}

func (p *packer) flush() {
	if p.curLen == 0 {
		return
	}
	p.parts = append(p.parts, p.cur.String())
	p.cur.Reset()
	p.curLen = 0
}

func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	chunks := make([]string, 0, len(runes)/size+1)
	for len(runes) > size {
		chunks = append(chunks, string(runes[:size]))
		runes = runes[size:]
	}
	return append(chunks, string(runes))
}
