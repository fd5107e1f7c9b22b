package word

import "math/bits"

// Word8 is an 8-bit bitset word.
type Word8 uint8

func (w Word8) And(o Word8) Word8      { return w & o }
func (w Word8) Or(o Word8) Word8       { return w | o }
func (w Word8) Xor(o Word8) Word8      { return w ^ o }
func (w Word8) Not() Word8             { return ^w }
func (w Word8) Shl(n uint) Word8       { return w << n }
func (w Word8) Shr(n uint) Word8       { return w >> n }
func (w Word8) PopCount() int          { return bits.OnesCount8(uint8(w)) }
func (w Word8) TrailingZeros() int     { return bits.TrailingZeros8(uint8(w)) }
func (w Word8) IsZero() bool           { return w == 0 }
func (w Word8) Equal(o Word8) bool     { return w == o }
func (Word8) Zero() Word8              { return 0 }
func (Word8) One() Word8               { return 1 }
func (Word8) Max() Word8               { return ^Word8(0) }
func (Word8) Size() int                { return 8 }
func (Word8) FromInt(n int) Word8      { return Word8(n) }
func (w Word8) ToInt() int             { return int(w) }

// Word16 is a 16-bit bitset word.
type Word16 uint16

func (w Word16) And(o Word16) Word16  { return w & o }
func (w Word16) Or(o Word16) Word16   { return w | o }
func (w Word16) Xor(o Word16) Word16  { return w ^ o }
func (w Word16) Not() Word16          { return ^w }
func (w Word16) Shl(n uint) Word16    { return w << n }
func (w Word16) Shr(n uint) Word16    { return w >> n }
func (w Word16) PopCount() int        { return bits.OnesCount16(uint16(w)) }
func (w Word16) TrailingZeros() int   { return bits.TrailingZeros16(uint16(w)) }
func (w Word16) IsZero() bool         { return w == 0 }
func (w Word16) Equal(o Word16) bool  { return w == o }
func (Word16) Zero() Word16           { return 0 }
func (Word16) One() Word16            { return 1 }
func (Word16) Max() Word16            { return ^Word16(0) }
func (Word16) Size() int              { return 16 }
func (Word16) FromInt(n int) Word16   { return Word16(n) }
func (w Word16) ToInt() int           { return int(w) }

// Word32 is a 32-bit bitset word.
type Word32 uint32

func (w Word32) And(o Word32) Word32 { return w & o }
func (w Word32) Or(o Word32) Word32  { return w | o }
func (w Word32) Xor(o Word32) Word32 { return w ^ o }
func (w Word32) Not() Word32         { return ^w }
func (w Word32) Shl(n uint) Word32   { return w << n }
func (w Word32) Shr(n uint) Word32   { return w >> n }
func (w Word32) PopCount() int       { return bits.OnesCount32(uint32(w)) }
func (w Word32) TrailingZeros() int  { return bits.TrailingZeros32(uint32(w)) }
func (w Word32) IsZero() bool        { return w == 0 }
func (w Word32) Equal(o Word32) bool { return w == o }
func (Word32) Zero() Word32          { return 0 }
func (Word32) One() Word32           { return 1 }
func (Word32) Max() Word32           { return ^Word32(0) }
func (Word32) Size() int             { return 32 }
func (Word32) FromInt(n int) Word32  { return Word32(n) }
func (w Word32) ToInt() int          { return int(w) }

// Word64 is a 64-bit bitset word.
type Word64 uint64

func (w Word64) And(o Word64) Word64 { return w & o }
func (w Word64) Or(o Word64) Word64  { return w | o }
func (w Word64) Xor(o Word64) Word64 { return w ^ o }
func (w Word64) Not() Word64         { return ^w }
func (w Word64) Shl(n uint) Word64   { return w << n }
func (w Word64) Shr(n uint) Word64   { return w >> n }
func (w Word64) PopCount() int       { return bits.OnesCount64(uint64(w)) }
func (w Word64) TrailingZeros() int  { return bits.TrailingZeros64(uint64(w)) }
func (w Word64) IsZero() bool        { return w == 0 }
func (w Word64) Equal(o Word64) bool { return w == o }
func (Word64) Zero() Word64          { return 0 }
func (Word64) One() Word64           { return 1 }
func (Word64) Max() Word64           { return ^Word64(0) }
func (Word64) Size() int             { return 64 }
func (Word64) FromInt(n int) Word64  { return Word64(n) }
func (w Word64) ToInt() int          { return int(w) }

// WordNative is a bitset word using the machine's native unsigned
// integer width (32 or 64 bits depending on platform).
type WordNative uint

func (w WordNative) And(o WordNative) WordNative { return w & o }
func (w WordNative) Or(o WordNative) WordNative  { return w | o }
func (w WordNative) Xor(o WordNative) WordNative { return w ^ o }
func (w WordNative) Not() WordNative             { return ^w }
func (w WordNative) Shl(n uint) WordNative       { return w << n }
func (w WordNative) Shr(n uint) WordNative       { return w >> n }
func (w WordNative) PopCount() int               { return bits.OnesCount(uint(w)) }
func (w WordNative) TrailingZeros() int          { return bits.TrailingZeros(uint(w)) }
func (w WordNative) IsZero() bool                { return w == 0 }
func (w WordNative) Equal(o WordNative) bool     { return w == o }
func (WordNative) Zero() WordNative          { return 0 }
func (WordNative) One() WordNative           { return 1 }
func (WordNative) Max() WordNative           { return ^WordNative(0) }
func (WordNative) Size() int                 { return bits.UintSize }
func (WordNative) FromInt(n int) WordNative  { return WordNative(n) }
func (w WordNative) ToInt() int              { return int(w) }
