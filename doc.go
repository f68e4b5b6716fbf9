/*

Package pk2 is a reader/writer for Silkroad Online's PK2 archive format.

A PK2 archive bundles a hierarchy of named directories and files inside one
seekable stream, optionally obfuscated with Blowfish in ECB mode. The archive
supports in-place mutation: files can be created, overwritten, deleted, and
grown, but the library never defragments on its own — that is the job of the
separate repack workflow (see cmd/pk2tool).

Information sources:

- The reference implementation this package's on-disk format was derived
  from: the pk2 crate (Rust), which documents the format byte-for-byte.

- Archive layout: a 256-byte header followed by a linked list of 2560-byte
  directory blocks (20 128-byte entries each) and interleaved file data,
  scattered across the stream in whatever order blocks/data happened to be
  appended.

Basic usage:

	archive, err := pk2.OpenFile("Data.pk2", "169841")
	if err != nil {
		log.Fatal(err)
	}

	f, err := archive.OpenFileHandle("/server_dep/silkroad/textdata/itemdata.txt")
	if err != nil {
		log.Fatal(err)
	}
	data, err := io.ReadAll(f)

*/
package pk2
