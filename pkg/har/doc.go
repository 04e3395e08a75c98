// Package har reads HTTP Archive (HAR) documents and selects entries from them.
//
// Only the fields harscope reports on are modeled: request URL, method,
// headers and post data, and the response status and content. Anything else in
// the document is ignored, and missing optional fields decode to their zero
// values.
//
// A loaded Archive is read-only. Filtering returns entries in archive order
// and never mutates the archive:
//
//	archive, err := har.Load("jwgl.suse.edu.cn.har")
//	if err != nil {
//	    return err // *har.ParseError when the file is not a HAR document
//	}
//	for _, e := range archive.Filter([]string{"jxzxjhgl"}, []string{"js"}) {
//	    fmt.Println(e.Request.URL)
//	}
package har
