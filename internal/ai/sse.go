package ai

import (
	"bufio"
	"io"
	"strings"
)

// maxSSELineSize bounds a single event line. Completion deltas are small;
// anything near this limit is a misbehaving upstream.
const maxSSELineSize = 1024 * 1024

// scanSSE walks a text/event-stream body and hands each data payload to
// emit. Returning done stops the scan without error. Event names and
// comments are skipped; the vendors carry everything in the data field.
func scanSSE(body io.Reader, emit func(data string) (done bool, err error)) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		done, err := emit(data)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}
