// Package extract pulls the bulletin record out of the Carta de Conjuntura
// page markup.
//
// The page is a list of WordPress-style <article> entries. Blocks splits the
// markup into those entries with a streaming tokenizer; the field extractors
// then read one entry at a time. The first entry whose publication date
// equals the target date wins and no later entry is looked at.
//
// This is not a general HTML scraper. It expects the theme's markup:
//
//	<article>
//	  <h1 class="entry-title"><a href="...">Title</a></h1>
//	  <time class="entry-date">16 de outubro de 2026</time>
//	  <div class="entry-content"><p>...</p><a href="...pdf">PDF</a></div>
//	</article>
package extract
