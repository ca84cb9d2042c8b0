// Package session runs learn and test passes over a wordlist.
//
// A Session fixes the wordlist's ordered cards when it starts and walks
// them one at a time, wrapping back to the first card after the last.
// Learn sessions confirm or skip cards; confirming bumps the card's
// frequency in the library. Test sessions hide the meaning until the card
// is revealed; revealing bumps the frequency once per visit.
package session
