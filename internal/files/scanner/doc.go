// Package scanner finds IronJacamar descriptors in a directory tree and
// parses each one.
//
// A file is a descriptor when it is named ironjacamar.xml (one activation)
// or resource-adapters.xml / *-ra.xml (a <resource-adapters> list, the
// naming used for server deployment directories). Hidden directories and
// Maven target/ output are not descended into.
//
// Parse failures do not stop a scan; they are recorded on the Descriptor so
// that every broken file in a tree is reported at once.
package scanner
