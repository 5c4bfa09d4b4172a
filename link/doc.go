// Package link defines the value types of a parsed link and the codec
// between them and the raw link string stored in record fields.
//
// A link destination is one of five shapes: page, file, folder, external URL
// or email address. Internal destinations use the "t3://" scheme:
//
//	t3://page?uid=42#c9
//	t3://page?alias=about-us
//	t3://file?uid=7
//	t3://folder?identifier=/user_upload/invoices/
//
// Mail addresses use "mailto:", everything else is treated as an external
// URL. Parsing never fails: an unrecognizable string yields a URL
// destination so the browse UI can still offer it for editing.
package link
