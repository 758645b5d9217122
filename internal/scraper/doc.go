// Package scraper fetches the Carta de Conjuntura bulletin page.
//
// A fetch is a single GET with no retries and no caching. The body is decoded
// to UTF-8 using the charset announced by the server. Any failure comes back
// as a *FetchError whose message starts with "ERRO:", so callers can carry it
// straight into a status message.
package scraper
