/*
Package x contains some standard extensions

Extensions are meant to be imported by applications and wired into the
router. The authentication helpers in this package let an extension ask
who signed a request without depending on a concrete signature scheme.
*/
package x
