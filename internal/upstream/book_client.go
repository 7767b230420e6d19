package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Book is the wire shape of a book returned by the book service.
type Book struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	ISBN            string   `json:"isbn"`
	PublicationYear int      `json:"publicationYear"`
	Authors         []string `json:"authors"`
	Genres          []string `json:"genres"`
	AwardsWon       []string `json:"awardsWon"`
}

// BookList is a paginated book result set.
type BookList struct {
	Total int    `json:"total"`
	Books []Book `json:"books"`
}

// BookClient fetches books from the book service on behalf of a caller.
type BookClient struct {
	base   string
	client *Client
}

// NewBookClient builds a client rooted at the book service base URL.
func NewBookClient(base string, client *Client) *BookClient {
	return &BookClient{base: base, client: client}
}

// FetchByIDs retrieves the given books, forwarding the caller's own
// credential rather than minting a new one. Ids that no longer resolve
// remotely are simply absent from the result.
func (b *BookClient) FetchByIDs(ctx context.Context, authorization string, ids []string, page int) (BookList, error) {
	query := url.Values{}
	query.Set("favourites", strings.Join(ids, ","))
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	header := http.Header{}
	header.Set("Authorization", authorization)

	var list BookList
	if err := b.client.DoJSON(ctx, http.MethodGet, b.base+"/book/get-books?"+query.Encode(), header, nil, &list); err != nil {
		return BookList{}, err
	}
	if list.Books == nil {
		list.Books = []Book{}
	}
	return list, nil
}
