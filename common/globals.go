package common

// SprigVersion is the current compiler version as a string.
const SprigVersion string = "0.3.0"

// SprigProfileFileName is the name of the build profile file looked for next
// to the input source file.
const SprigProfileFileName string = "sprig.toml"

// SprigFileExt is the file extension for a Sprig source file.
const SprigFileExt string = ".sp"

// InitFuncName is the name of the generated function which initializes all
// global variables.
const InitFuncName string = "sprig.init"

// IPowFuncName is the name of the generated function implementing integer
// exponentiation.
const IPowFuncName string = "sprig.ipow"

// FPowIntrinsicName is the name of the LLVM intrinsic implementing floating
// point exponentiation.
const FPowIntrinsicName string = "llvm.pow.f64"
