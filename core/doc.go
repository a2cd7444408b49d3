// Package core provides the operand object types found in PDF content
// streams.
//
// Content stream operands are direct objects only:
//
//   - [Null] - the null object
//   - [Bool] - boolean values (true/false)
//   - [Int] - integers
//   - [Real] - real numbers
//   - [String] - literal or hexadecimal strings holding character codes
//   - [Name] - names such as /F1 or /Im0
//   - [Array] - arrays, e.g. the operand of TJ
//   - [Dict] - dictionaries, e.g. inline image parameters
//
// [Raw] carries a token that could not be parsed as a number or keyword so
// that the interpreter can report it.
//
// [ToFloat] and [ToInt] convert numeric operands. Both report failure
// instead of returning an error so that callers can attach the operator
// context to the error they build.
package core
