package audit

import "strings"

// ActionResource is the audit action and resource of one RPC.
type ActionResource struct {
	Action   string
	Resource string
}

const unknown = "unknown"

// ParseFullMethod maps /dealership.purchase.v1.PurchaseService/CompletePurchase to
// complete/purchase: the action is the method's leading verb and the resource is the service
// name without its Service suffix.
func ParseFullMethod(fullMethod string) ActionResource {
	svc, method, ok := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
	if !ok || method == "" {
		return ActionResource{Action: unknown, Resource: unknown}
	}
	ar := ActionResource{Action: action(method), Resource: unknown}
	if i := strings.LastIndexByte(svc, '.'); i >= 0 {
		ar.Resource = resource(svc[i+1:])
	}
	return ar
}

func resource(service string) string {
	name := strings.TrimSuffix(service, "Service")
	if name == "" {
		return unknown
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// verbs are the leading verbs of the API's method names. None is a prefix of another.
var verbs = []string{
	"Search", "Get", "List", "Create", "Update", "Delete",
	"Request", "Complete", "Reject", "Register", "Login", "Verify",
}

func action(method string) string {
	for _, v := range verbs {
		if len(method) > len(v) && strings.HasPrefix(method, v) {
			return strings.ToLower(v)
		}
	}
	return strings.ToLower(method)
}
