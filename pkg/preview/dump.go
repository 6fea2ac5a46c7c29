package preview

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// dumpLen caps how much of a binary file is hex-dumped.
const dumpLen = 256

// Dump writes a content-type label and a short hex dump for a binary file.
func Dump(w io.Writer, path string, size int64, head []byte) error {
	ct := http.DetectContentType(head)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}

	if _, err := fmt.Fprintf(w, "%s (%d bytes)\n\n", ct, size); err != nil {
		return err
	}

	sample := head
	if len(sample) > dumpLen {
		sample = sample[:dumpLen]
	}
	d := hex.Dumper(w)
	if _, err := d.Write(sample); err != nil {
		return err
	}
	if err := d.Close(); err != nil {
		return err
	}
	if int64(len(sample)) < size {
		if _, err := fmt.Fprintln(w, "…"); err != nil {
			return err
		}
	}
	return nil
}
