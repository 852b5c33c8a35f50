// Package mhtml decodes browser-saved MHTML archives.
//
// MHTML packages a page and its resources as a MIME multipart/related
// message. Browsers disagree on how they write it: the boundary parameter
// may be double-quoted, single-quoted or bare, and HTML parts are sometimes
// quoted-printable encoded without saying so. The decoder tolerates these
// dialects and skips individual parts it cannot decode instead of failing
// the whole archive.
package mhtml
