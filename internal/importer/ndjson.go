package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pribylovaa/go-govjobs/internal/models"
)

// maxLine - предел длины одной строки NDJSON.
const maxLine = 4 << 20

// LineError - строка NDJSON, которую не удалось разобрать (нумерация с 1).
type LineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ReadNDJSON читает по одному CreateInput на строку. Пустые строки пропускаются,
// битые строки попадают в LineError и не прерывают чтение.
// error - только ошибка чтения потока (в том числе слишком длинная строка).
func ReadNDJSON(r io.Reader) ([]models.CreateInput, []LineError, error) {
	const op = "importer/ReadNDJSON"

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	var items []models.CreateInput
	var bad []LineError

	line := 0
	for sc.Scan() {
		line++

		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		var in models.CreateInput
		if err := json.Unmarshal(raw, &in); err != nil {
			bad = append(bad, LineError{Line: line, Message: err.Error()})
			continue
		}

		items = append(items, in)
	}

	if err := sc.Err(); err != nil {
		return items, bad, fmt.Errorf("%s: line %d: %w", op, line+1, err)
	}

	return items, bad, nil
}
