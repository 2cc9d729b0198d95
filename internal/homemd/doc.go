// Package homemd parses the family home-page markdown dialect into a
// renderer-agnostic Document. The dialect layers three directives on top of
// ordinary markdown:
//
//	![background](url)           full-bleed background image, first one wins
//	![left|center|right](...)    aligned block holding text or one image
//	![alt](url)                  regular image markdown, also valid inside blocks
//
// Parse is the single entry point shared by every render adapter. The
// package performs no I/O and every function is total: malformed
// directives degrade to plain markdown instead of failing.
package homemd
