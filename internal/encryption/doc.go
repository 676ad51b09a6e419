// Package encryption encrypts and decrypts files with IDEA in CBC mode.
//
// Every output has the layout IV (8 bytes) followed by the PKCS#7-padded
// ciphertext, with no header or authentication tag. Files are processed whole
// in memory and outputs are written atomically. A Processor runs many files
// concurrently. Keys are exactly 16 bytes.
package encryption
