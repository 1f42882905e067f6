package transcriber

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	pcmSampleRate    = 16000
	pcmChannels      = 1
	pcmBitsPerSample = 16
)

// passthroughFormats are containers sent to the recognizer unmodified
var passthroughFormats = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".webm": true,
	".mpeg": true,
	".mpga": true,
}

// prepareAudio turns a loaded file into the bytes and filename sent to the adapter.
// WAV is checked for silence, headerless PCM is wrapped into WAV first.
func prepareAudio(raw []byte, filename string, silenceThreshold int) ([]byte, string, error) {
	if len(raw) == 0 {
		return nil, "", ErrSilentAudio
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if passthroughFormats[ext] {
		return raw, filename, nil
	}

	if bytes.HasPrefix(raw, []byte("RIFF")) {
		info, err := parseWAV(raw)
		if err != nil {
			return nil, "", err
		}
		if info.BitsPerSample == 16 && isSilent(info.Data, silenceThreshold) {
			return nil, "", ErrSilentAudio
		}
		return raw, ensureExt(filename, ".wav"), nil
	}

	if ext == ".pcm" || ext == ".raw" || ext == "" {
		if isSilent(raw, silenceThreshold) {
			return nil, "", ErrSilentAudio
		}
		wav, err := convertToWAV(raw)
		if err != nil {
			return nil, "", fmt.Errorf("convert to WAV: %w", err)
		}
		return wav, ensureExt(strings.TrimSuffix(filename, ext), ".wav"), nil
	}

	return nil, "", fmt.Errorf("unsupported audio format %q", ext)
}

func ensureExt(filename, ext string) string {
	if filename == "" {
		return "audio" + ext
	}
	if strings.EqualFold(filepath.Ext(filename), ext) {
		return filename
	}
	return filename + ext
}

// wavInfo holds the parts of a WAV file needed for validation
type wavInfo struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	Data          []byte
}

// parseWAV walks the RIFF chunks and returns the fmt fields and sample data
func parseWAV(raw []byte) (*wavInfo, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a WAV file")
	}

	info := &wavInfo{}
	foundFmt := false
	offset := 12
	for offset+8 <= len(raw) {
		id := string(raw[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(raw[offset+4 : offset+8]))
		body := offset + 8
		end := body + size
		if end > len(raw) {
			end = len(raw) // truncated recordings are common, use what is there
		}

		switch id {
		case "fmt ":
			if end-body < 16 {
				return nil, fmt.Errorf("fmt chunk too short")
			}
			info.Channels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
			foundFmt = true
		case "data":
			info.Data = raw[body:end]
		}

		// chunks are word aligned
		offset = body + size + size%2
	}

	if !foundFmt {
		return nil, fmt.Errorf("missing fmt chunk")
	}
	return info, nil
}

// isSilent reports whether 16-bit little-endian PCM never exceeds threshold
func isSilent(pcm []byte, threshold int) bool {
	if len(pcm) < 2 {
		return true
	}
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int(int16(binary.LittleEndian.Uint16(pcm[i : i+2])))
		if sample < 0 {
			sample = -sample
		}
		if sample > threshold {
			return false
		}
	}
	return true
}

// convertToWAV converts raw 16-bit PCM audio to WAV format
func convertToWAV(rawAudio []byte) ([]byte, error) {
	var buf bytes.Buffer

	const byteRate = pcmSampleRate * pcmChannels * pcmBitsPerSample / 8
	const blockAlign = pcmChannels * pcmBitsPerSample / 8

	dataSize := len(rawAudio)
	fileSize := 36 + dataSize

	// WAV header
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))               // fmt chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))                // PCM format
	binary.Write(&buf, binary.LittleEndian, uint16(pcmChannels))      // number of channels
	binary.Write(&buf, binary.LittleEndian, uint32(pcmSampleRate))    // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))         // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))       // block align
	binary.Write(&buf, binary.LittleEndian, uint16(pcmBitsPerSample)) // bits per sample

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(rawAudio)

	return buf.Bytes(), nil
}
