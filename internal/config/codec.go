package config

import (
	"bytes"
	"encoding/binary"
)

// Record layout, byte-exact:
//
//	offset   0: marker byte, valid iff 0xAE
//	offset   1: servername[40]
//	offset  41: serverport int32, little-endian
//	offset  45: username[20]
//	offset  65: password[20]
//	offset  85: topic[60]
//	offset 145: propertyname0..3, [20] each
//
// Text fields are fixed-width and null-terminated. The record is
// padded with zeros to RecordSize.
const (
	RecordSize  = 512
	markerValue = 0xAE

	serverNameLen   = 40
	usernameLen     = 20
	passwordLen     = 20
	topicLen        = 60
	propertyNameLen = 20
)

// encode serializes the configuration into a full-size record,
// including the leading validity marker. Over-length field values are
// truncated to fit their fixed width.
func encode(c *Configuration) []byte {
	buf := make([]byte, RecordSize)
	buf[0] = markerValue

	off := 1
	off = putString(buf, off, c.ServerName, serverNameLen)
	binary.LittleEndian.PutUint32(buf[off:], uint32(int32(c.ServerPort)))
	off += 4
	off = putString(buf, off, c.Username, usernameLen)
	off = putString(buf, off, c.Password, passwordLen)
	off = putString(buf, off, c.Topic, topicLen)
	for i := range c.PropertyNames {
		off = putString(buf, off, c.PropertyNames[i], propertyNameLen)
	}
	return buf
}

// decode parses a record previously produced by encode. The caller
// has already checked the validity marker.
func decode(buf []byte) *Configuration {
	c := &Configuration{}

	off := 1
	c.ServerName, off = getString(buf, off, serverNameLen)
	c.ServerPort = int(int32(binary.LittleEndian.Uint32(buf[off:])))
	off += 4
	c.Username, off = getString(buf, off, usernameLen)
	c.Password, off = getString(buf, off, passwordLen)
	c.Topic, off = getString(buf, off, topicLen)
	for i := range c.PropertyNames {
		c.PropertyNames[i], off = getString(buf, off, propertyNameLen)
	}
	return c
}

// putString copies s into a fixed-width null-terminated field,
// truncating to width-1 bytes. Returns the offset past the field.
func putString(buf []byte, off int, s string, width int) int {
	if len(s) > width-1 {
		s = s[:width-1]
	}
	copy(buf[off:off+width-1], s)
	return off + width
}

// getString reads a fixed-width null-terminated field. Returns the
// string and the offset past the field.
func getString(buf []byte, off int, width int) (string, int) {
	field := buf[off : off+width]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field), off + width
}
