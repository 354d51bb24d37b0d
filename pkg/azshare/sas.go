package azshare

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// Version of the storage REST API the signatures are computed against.
const sasVersion = "2022-11-02"

const sasTimeFormat = "2006-01-02T15:04:05Z"

// Permission is the set of operations a shared access signature grants on a
// file. The four flags are independent; combinations such as read+delete
// without write are meaningful and used.
type Permission struct {
	Read   bool
	Create bool
	Write  bool
	Delete bool
}

// String renders the permission flags in the fixed "rcwd" order the storage
// service expects.
func (p Permission) String() string {
	var b strings.Builder
	if p.Read {
		b.WriteByte('r')
	}
	if p.Create {
		b.WriteByte('c')
	}
	if p.Write {
		b.WriteByte('w')
	}
	if p.Delete {
		b.WriteByte('d')
	}

	return b.String()
}

// FileSAS computes shared access signatures for single files on a share,
// signed with the storage account key.
type FileSAS struct {
	accountName string
	accountKey  []byte
}

func NewFileSAS(accountName string, accountKey []byte) *FileSAS {
	return &FileSAS{accountName: accountName, accountKey: accountKey}
}

// GenerateFile returns the signed query string granting perm on the file
// identified by (share, dirPath, fileName) between start and expiry. The
// signature covers the canonicalized file path, the permission string and the
// time window, so the resulting token is valid for exactly one file.
func (s *FileSAS) GenerateFile(share, dirPath, fileName string, perm Permission, start, expiry time.Time) string {
	st := start.UTC().Format(sasTimeFormat)
	se := expiry.UTC().Format(sasTimeFormat)
	sp := perm.String()

	canonicalizedResource := "/file/" + s.accountName + "/" + path.Join(share, dirPath, fileName)

	stringToSign := strings.Join([]string{
		sp,
		st,
		se,
		canonicalizedResource,
		"", // signed identifier
		"", // signed IP
		"", // signed protocol
		sasVersion,
		"", // cache-control
		"", // content-disposition
		"", // content-encoding
		"", // content-language
		"", // content-type
	}, "\n")

	mac := hmac.New(sha256.New, s.accountKey)
	mac.Write([]byte(stringToSign))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	params := url.Values{}
	params.Set("sv", sasVersion)
	params.Set("st", st)
	params.Set("se", se)
	params.Set("sp", sp)
	params.Set("sig", sig)

	return params.Encode()
}

// FileURL builds the addressable URL for a file on a share, without any
// query parameters.
func (s *FileSAS) FileURL(share, dirPath, fileName string) string {
	return fmt.Sprintf("https://%s.file.core.windows.net/%s", s.accountName, path.Join(share, dirPath, fileName))
}
