/*
Package w3cdom implements a W3C-style view of a styled document, the
interface scripts and tests use to inspect nodes, their styles and the
geometry of their fragments.

See also https://www.w3schools.com/XML/dom_intro.asp

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom
