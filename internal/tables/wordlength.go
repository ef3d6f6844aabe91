package tables

// WordLengthBits maps a 4-bit word-length index to the number of bits
// used per quantized coefficient; index 0 means the BFU is omitted.
var WordLengthBits = [16]int{0, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

// MaxWordLengthIndex is the highest valid word-length index.
const MaxWordLengthIndex = 15
