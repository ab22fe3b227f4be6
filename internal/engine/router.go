package engine

import (
	"context"
	"sort"
	"strings"
)

// callbackFunc gestisce un token di callback; arg è la parte del token che
// segue il prefisso registrato.
type callbackFunc func(ctx context.Context, userID int64, arg string) Response

type route struct {
	prefix  string
	handler callbackFunc
}

// callbackRouter instrada i token dei bottoni per prefisso. I prefissi sono
// provati dal più lungo al più corto, così "gestisci_categoria_" vince su
// "gestisci_" indipendentemente dall'ordine di registrazione.
type callbackRouter struct {
	routes []route
}

func (r *callbackRouter) handle(prefix string, fn callbackFunc) {
	r.routes = append(r.routes, route{prefix: prefix, handler: fn})
	sort.SliceStable(r.routes, func(i, j int) bool {
		return len(r.routes[i].prefix) > len(r.routes[j].prefix)
	})
}

// dispatch trova la route con il prefisso più lungo che combacia con il token
// e la invoca. Riporta false se nessuna route combacia.
func (r *callbackRouter) dispatch(ctx context.Context, userID int64, token string) (Response, bool) {
	for _, rt := range r.routes {
		if strings.HasPrefix(token, rt.prefix) {
			return rt.handler(ctx, userID, strings.TrimPrefix(token, rt.prefix)), true
		}
	}
	return Response{}, false
}
