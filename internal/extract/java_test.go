//go:build cgo

package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	lenserr "repolens/internal/errors"
	"repolens/internal/model"
)

const orderSource = `package app;

import app.billing.Invoice;
import java.util.List;

public class Order extends BaseEntity implements Auditable, Serializable {
    private final OrderId id;
    private Customer customer;
    private List<Item> items;
    protected int version;

    public Money total(Currency currency) {
        Money sum = pricing.subtotal();
        tax.apply(sum);
        return sum;
    }

    void touch() {
        audit.record();
    }
}
`

func extractOrder(t *testing.T) *model.SourceFileRecord {
	t.Helper()
	rec, err := NewJavaExtractor().ExtractSource(context.Background(), "src/Order.java", []byte(orderSource))
	if err != nil {
		t.Fatalf("ExtractSource: %v", err)
	}
	return rec
}

func TestExtractPackageAndImports(t *testing.T) {
	rec := extractOrder(t)

	if rec.Package != "app" {
		t.Errorf("Package = %q, want app", rec.Package)
	}
	if len(rec.Dependencies) != 1 || rec.Dependencies[0] != "app.billing.Invoice" {
		t.Errorf("Dependencies = %v, want only app.billing.Invoice (java.* skipped)", rec.Dependencies)
	}
}

func TestExtractClassShape(t *testing.T) {
	rec := extractOrder(t)

	if len(rec.Classes) != 1 {
		t.Fatalf("Classes = %d, want 1", len(rec.Classes))
	}
	cls := rec.Classes[0]

	if cls.Name != "Order" {
		t.Errorf("Name = %q", cls.Name)
	}
	if cls.Parent != "BaseEntity" {
		t.Errorf("Parent = %q, want BaseEntity", cls.Parent)
	}
	if len(cls.Interfaces) != 2 || cls.Interfaces[0] != "Auditable" || cls.Interfaces[1] != "Serializable" {
		t.Errorf("Interfaces = %v", cls.Interfaces)
	}
	if cls.IsInterface || cls.IsAbstract {
		t.Errorf("flags = interface:%v abstract:%v", cls.IsInterface, cls.IsAbstract)
	}
}

func TestExtractAttributes(t *testing.T) {
	cls := extractOrder(t).Classes[0]

	byName := map[string]model.AttributeInfo{}
	for _, a := range cls.Attributes {
		byName[a.Name] = a
	}

	id, ok := byName["id"]
	if !ok || !id.IsFinal || id.DeclaredType != "OrderId" || id.Visibility != model.VisibilityPrivate {
		t.Errorf("id attribute = %+v", id)
	}
	customer := byName["customer"]
	if customer.IsFinal || customer.DeclaredType != "Customer" {
		t.Errorf("customer attribute = %+v", customer)
	}
	items := byName["items"]
	if !items.IsCollection || items.ElementType != "Item" {
		t.Errorf("items attribute = %+v, want collection of Item", items)
	}
	version := byName["version"]
	if version.Visibility != model.VisibilityProtected {
		t.Errorf("version visibility = %q", version.Visibility)
	}
}

func TestExtractMethods(t *testing.T) {
	cls := extractOrder(t).Classes[0]

	if len(cls.Methods) != 2 {
		t.Fatalf("Methods = %d, want 2", len(cls.Methods))
	}
	total := cls.Methods[0]
	if total.Name != "total" || total.ReturnType != "Money" || total.Visibility != model.VisibilityPublic {
		t.Errorf("total = %+v", total)
	}
	if len(total.ParameterTypes) != 1 || total.ParameterTypes[0] != "Currency" {
		t.Errorf("total params = %v", total.ParameterTypes)
	}
	touch := cls.Methods[1]
	if touch.ReturnType != "void" || touch.Visibility != model.VisibilityPackage {
		t.Errorf("touch = %+v", touch)
	}
}

func TestExtractCallEdges(t *testing.T) {
	rec := extractOrder(t)

	if len(rec.Calls) != 3 {
		t.Fatalf("Calls = %d, want 3: %+v", len(rec.Calls), rec.Calls)
	}
	for i, call := range rec.Calls {
		if call.Sequence != i+1 {
			t.Errorf("sequence[%d] = %d, want %d", i, call.Sequence, i+1)
		}
		if call.CallerClass != "Order" {
			t.Errorf("caller class = %q", call.CallerClass)
		}
	}
	first := rec.Calls[0]
	if first.CallerMethod != "total" || first.CalleeClass != "pricing" || first.CalleeMethod != "subtotal" {
		t.Errorf("first call = %+v", first)
	}
	last := rec.Calls[2]
	if last.CallerMethod != "touch" || last.CalleeMethod != "record" {
		t.Errorf("last call = %+v", last)
	}
}

func TestExtractInterfaceAndAbstract(t *testing.T) {
	source := `package app;

public interface Flag extends Marker {
    void raise();
}

abstract class Base {
    protected String name;
}
`
	rec, err := NewJavaExtractor().ExtractSource(context.Background(), "src/Flag.java", []byte(source))
	if err != nil {
		t.Fatalf("ExtractSource: %v", err)
	}
	if len(rec.Classes) != 2 {
		t.Fatalf("Classes = %d, want 2", len(rec.Classes))
	}

	flag := rec.Classes[0]
	if !flag.IsInterface {
		t.Error("Flag should be an interface")
	}
	if len(flag.Interfaces) != 1 || flag.Interfaces[0] != "Marker" {
		t.Errorf("interface extends = %v, want [Marker]", flag.Interfaces)
	}

	base := rec.Classes[1]
	if !base.IsAbstract {
		t.Error("Base should be abstract")
	}
}

func TestExtractUnreadableFile(t *testing.T) {
	_, err := NewJavaExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.java"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
	if lenserr.CodeOf(err) != lenserr.ExtractionFailed {
		t.Errorf("CodeOf = %s, want %s", lenserr.CodeOf(err), lenserr.ExtractionFailed)
	}
}

func TestExtractFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Customer.java")
	if err := os.WriteFile(path, []byte("package app;\npublic class Customer {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec, err := NewJavaExtractor().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.Path != path || len(rec.Classes) != 1 || rec.Classes[0].Name != "Customer" {
		t.Errorf("rec = %+v", rec)
	}
}
