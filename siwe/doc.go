// Package siwe builds and parses EIP-4361 "Sign-In with Ethereum" messages.
//
// CreateMessage is strict: it validates every field and renders the canonical
// text byte for byte. ParseMessage is lenient: it returns whatever fields the
// text structurally yields and never fails. Callers that need the parsed
// record to be valid convert it with ParsedMessage.Message and call Validate.
//
// Signature verification is not part of this package; see the signer package
// for producing signatures over a rendered message.
package siwe
