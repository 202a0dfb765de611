// Package liveselect exposes the select widgets mounted on a host form over
// net/http, so a browser can drive them without a client-side state engine.
//
// The handler serves paths relative to its mount point:
//
//	GET       /{model}          render the widget
//	POST      /{model}/toggle   toggle the option named by the "value" field
//	GET|POST  /{model}/search   set the search text and render
//	GET       /{model}/options  JSON options ranked by the query parameter
//	POST      /errors           map a server error payload onto the widgets
//
// Model names are path escaped, so "a/b" is served under /a%2Fb. Only POST
// claims /errors; GET /errors renders a widget modelled "errors".
//
// Widgets render through a render.Renderer; the JSON renderer is the default.
package liveselect
