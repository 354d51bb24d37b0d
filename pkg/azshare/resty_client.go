package azshare

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient talks to the file share over the storage REST API. Requests are
// signed with the account key (SharedKeyLite scheme).
type RestyClient struct {
	account string
	key     []byte
	share   string
	c       *resty.Client
	sas     *FileSAS
}

// NewRestyClient creates a client for one share on one storage account.
// accountKey is the base64-encoded account key.
func NewRestyClient(account, accountKey, share string) (*RestyClient, error) {
	key, err := base64.StdEncoding.DecodeString(accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid storage account key: %s", err)
	}

	c := resty.New().
		SetBaseURL(fmt.Sprintf("https://%s.file.core.windows.net", account)).
		SetTimeout(60 * time.Second)

	return &RestyClient{
		account: account,
		key:     key,
		share:   share,
		c:       c,
		sas:     NewFileSAS(account, key),
	}, nil
}

func (c *RestyClient) ListDirectory(dirPath string) ([]DirEntry, error) {
	query := url.Values{}
	query.Set("restype", "directory")
	query.Set("comp", "list")

	resp, err := c.execute(http.MethodGet, c.sharePath(dirPath), query, nil, nil)
	if err != nil {
		return nil, err
	}

	var results struct {
		XMLName xml.Name `xml:"EnumerationResults"`
		Files   []struct {
			Name       string `xml:"Name"`
			Properties struct {
				ContentLength int64 `xml:"Content-Length"`
			} `xml:"Properties"`
		} `xml:"Entries>File"`
		Directories []struct {
			Name string `xml:"Name"`
		} `xml:"Entries>Directory"`
	}

	if err := xml.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("unable to parse directory listing: %s", err)
	}

	var entries []DirEntry
	for _, f := range results.Files {
		entries = append(entries, DirEntry{Name: f.Name, Size: f.Properties.ContentLength})
	}
	for _, d := range results.Directories {
		entries = append(entries, DirEntry{Name: d.Name, IsDirectory: true})
	}

	return entries, nil
}

func (c *RestyClient) GetFileProperties(filePath string) (*FileProperties, error) {
	resp, err := c.execute(http.MethodHead, c.sharePath(filePath), url.Values{}, nil, nil)
	if err != nil {
		return nil, err
	}

	size, _ := strconv.ParseInt(resp.Header().Get("Content-Length"), 10, 64)
	lastModified, _ := http.ParseTime(resp.Header().Get("Last-Modified"))

	return &FileProperties{
		Name:         path.Base(filePath),
		Size:         size,
		LastModified: lastModified,
	}, nil
}

func (c *RestyClient) DownloadRange(dirPath, fileName string, startRange, endRange int64) (*RangeResponse, error) {
	byteRange := fmt.Sprintf("bytes=%d-", startRange)
	if endRange >= 0 {
		byteRange = fmt.Sprintf("bytes=%d-%d", startRange, endRange)
	}

	headers := map[string]string{"x-ms-range": byteRange}

	resp, err := c.execute(http.MethodGet, c.sharePath(path.Join(dirPath, fileName)), url.Values{}, headers, nil)
	if err != nil {
		return nil, err
	}

	content := resp.Body()
	contentLength := startRange + int64(len(content))
	if contentRange := resp.Header().Get("Content-Range"); contentRange != "" {
		if i := strings.LastIndex(contentRange, "/"); i != -1 {
			if total, err := strconv.ParseInt(contentRange[i+1:], 10, 64); err == nil {
				contentLength = total
			}
		}
	}

	return &RangeResponse{Content: content, ContentLength: contentLength}, nil
}

func (c *RestyClient) CreateDirectory(dirPath string) error {
	query := url.Values{}
	query.Set("restype", "directory")

	_, err := c.execute(http.MethodPut, c.sharePath(dirPath), query, nil, nil)
	return err
}

func (c *RestyClient) RenameDirectory(dirPath, destPath string, overwrite bool) error {
	query := url.Values{}
	query.Set("restype", "directory")
	query.Set("comp", "rename")

	headers := map[string]string{
		"x-ms-file-rename-source":            c.c.BaseURL + c.sharePath(dirPath),
		"x-ms-file-rename-replace-if-exists": strconv.FormatBool(overwrite),
	}

	_, err := c.execute(http.MethodPut, c.sharePath(destPath), query, headers, nil)
	return err
}

func (c *RestyClient) FileSASURL(dirPath, fileName string, perm Permission, start, expiry time.Time) string {
	return c.sas.FileURL(c.share, dirPath, fileName) + "?" + c.sas.GenerateFile(c.share, dirPath, fileName, perm, start, expiry)
}

func (c *RestyClient) SetCORSPolicy(allowedOrigins []string) error {
	type corsRule struct {
		AllowedOrigins  string `xml:"AllowedOrigins"`
		AllowedMethods  string `xml:"AllowedMethods"`
		AllowedHeaders  string `xml:"AllowedHeaders"`
		ExposedHeaders  string `xml:"ExposedHeaders"`
		MaxAgeInSeconds int    `xml:"MaxAgeInSeconds"`
	}

	properties := struct {
		XMLName xml.Name   `xml:"StorageServiceProperties"`
		Cors    []corsRule `xml:"Cors>CorsRule"`
	}{
		Cors: []corsRule{
			{
				AllowedOrigins: strings.Join(allowedOrigins, ","),
				AllowedMethods: "DELETE,GET,HEAD,POST,OPTIONS,PUT",
				AllowedHeaders: strings.Join([]string{
					"x-ms-content-length",
					"x-ms-type",
					"x-ms-version",
					"x-ms-write",
					"x-ms-range",
					"content-type",
				}, ","),
			},
		},
	}

	body, err := xml.Marshal(properties)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("restype", "service")
	query.Set("comp", "properties")

	_, err = c.execute(http.MethodPut, "/", query, nil, body)
	return err
}

func (c *RestyClient) sharePath(p string) string {
	escaped := make([]string, 0)
	for _, segment := range strings.Split(path.Join(c.share, p), "/") {
		if segment != "" {
			escaped = append(escaped, url.PathEscape(segment))
		}
	}

	return "/" + strings.Join(escaped, "/")
}

// execute signs and sends one request, translating error responses into
// *StorageError.
func (c *RestyClient) execute(verb, resourcePath string, query url.Values, headers map[string]string, body []byte) (*resty.Response, error) {
	all := map[string]string{
		"x-ms-date":    time.Now().UTC().Format(http.TimeFormat),
		"x-ms-version": sasVersion,
	}
	for k, v := range headers {
		all[k] = v
	}

	contentType := ""
	if body != nil {
		contentType = "application/xml"
		all["Content-Type"] = contentType
	}

	all["Authorization"] = c.authorization(verb, resourcePath, query, all, contentType)

	req := c.c.R().SetHeaders(all).SetQueryParamsFromValues(query)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(verb, resourcePath)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toStorageError(resp)
	}

	return resp, nil
}

// authorization computes the SharedKeyLite authorization header for a request.
func (c *RestyClient) authorization(verb, resourcePath string, query url.Values, headers map[string]string, contentType string) string {
	var msHeaders []string
	for k, v := range headers {
		name := strings.ToLower(k)
		if strings.HasPrefix(name, "x-ms-") {
			msHeaders = append(msHeaders, name+":"+v)
		}
	}
	sort.Strings(msHeaders)

	canonicalizedResource := "/" + c.account + resourcePath
	if comp := query.Get("comp"); comp != "" {
		canonicalizedResource += "?comp=" + comp
	}

	stringToSign := strings.Join([]string{
		verb,
		"", // Content-MD5
		contentType,
		"", // Date is carried in x-ms-date
		strings.Join(msHeaders, "\n") + "\n" + canonicalizedResource,
	}, "\n")

	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(stringToSign))

	return "SharedKeyLite " + c.account + ":" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// toStorageError parses the XML error body the storage service responds with.
func toStorageError(resp *resty.Response) *StorageError {
	var errorResponse struct {
		XMLName xml.Name `xml:"Error"`
		Code    string   `xml:"Code"`
		Message string   `xml:"Message"`
	}

	if err := xml.Unmarshal(resp.Body(), &errorResponse); err != nil || errorResponse.Code == "" {
		errorResponse.Code = resp.Header().Get("x-ms-error-code")
	}

	if errorResponse.Message == "" {
		errorResponse.Message = resp.Status()
	}

	return &StorageError{
		StatusCode: resp.StatusCode(),
		Code:       errorResponse.Code,
		Message:    errorResponse.Message,
	}
}
