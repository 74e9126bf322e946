package test

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

func RandomBytes(len int) []byte {
	bytes := make([]byte, len)
	_, err := rand.Read(bytes)
	if err != nil {
		panic(err)
	}
	return bytes
}

// RandomString returns random lowercase hex string of given length.
func RandomString(len int) string {
	b := RandomBytes(len/2 + 1)
	return fmt.Sprintf("%x", b)[:len]
}

// RandomText returns string of random bytes, not necessarily valid UTF-8.
func RandomText(len int) string {
	return string(RandomBytes(len))
}

func RandomUint64() uint64 {
	return binary.BigEndian.Uint64(RandomBytes(8))
}
