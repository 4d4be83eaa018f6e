package resolver

import (
	"github.com/tsgonest/typesurface/internal/docs"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

func (c *Context) resolveFunction(t *oracle.Type) (surface.TypeNode, error) {
	c.callbackDepth++
	defer func() { c.callbackDepth-- }()

	name, err := c.typeName(t)
	if err != nil {
		return nil, err
	}
	sigs := c.checker.SignaturesOfType(t, oracle.SignatureKindCall)
	fn := &surface.FunctionNode{Name: name, Signatures: make([]*surface.SignatureNode, 0, len(sigs))}
	for _, sig := range sigs {
		sn, err := c.resolveSignature(sig, ownDoc(sig))
		if err != nil {
			return nil, err
		}
		fn.Signatures = append(fn.Signatures, sn)
	}
	return fn, nil
}

// ownDoc documents a signature from its own declaration only.
func ownDoc(sig *oracle.Signature) *surface.Documentation {
	if sig.Declaration == nil {
		return nil
	}
	return docs.FromComment(sig.Declaration.Doc)
}

// resolveSignature resolves type parameters, parameters and return type of
// sig.
func (c *Context) resolveSignature(sig *oracle.Signature, doc *surface.Documentation) (*surface.SignatureNode, error) {
	return c.signature(sig, doc, true)
}

func (c *Context) signature(sig *oracle.Signature, doc *surface.Documentation, withReturn bool) (*surface.SignatureNode, error) {
	node := &surface.SignatureNode{
		Parameters:    make([]*surface.ParameterNode, 0, len(sig.Parameters)),
		Documentation: doc,
	}

	for _, tp := range sig.TypeParameters {
		n, err := c.signatureTypeParameter(tp)
		if err != nil {
			return nil, err
		}
		node.TypeParameters = append(node.TypeParameters, n)
	}

	for i, p := range sig.Parameters {
		pn, err := c.resolveParameter(sig, p, sig.HasRestParameter && i == len(sig.Parameters)-1)
		if err != nil {
			return nil, err
		}
		node.Parameters = append(node.Parameters, pn)
	}

	if !withReturn {
		return node, nil
	}
	if ret := c.checker.ReturnTypeOfSignature(sig); ret != nil {
		rn, err := c.Resolve(ret, Hint{Decl: sig.Declaration})
		if err != nil {
			return nil, err
		}
		node.ReturnType = rn
	} else {
		node.ReturnType = surface.NewIntrinsic(surface.IntrinsicVoid)
	}
	return node, nil
}

func (c *Context) signatureTypeParameter(tp *oracle.Type) (*surface.TypeParameterNode, error) {
	if c.onStack(tp) {
		return &surface.TypeParameterNode{Name: simpleName(tp)}, nil
	}
	defer c.enter(tp)()
	return c.resolveTypeParameter(tp)
}

func (c *Context) resolveParameter(sig *oracle.Signature, p *oracle.Symbol, rest bool) (*surface.ParameterNode, error) {
	defer c.pushSymbol(p.Name)()

	pt := c.checker.TypeOfSymbol(p)
	if pt == nil {
		return nil, c.missingContext(p.FirstDeclaration(), "parameter has no type", "parameter", p.Name)
	}
	node, err := c.Resolve(pt, Hint{Name: p.Name, Decl: p.FirstDeclaration()})
	if err != nil {
		return nil, c.wrap(err)
	}
	return &surface.ParameterNode{
		Name:          p.Name,
		Type:          node,
		Optional:      p.Is(oracle.SymbolFlagsOptional),
		Rest:          rest,
		Documentation: docs.ForParameter(sig.Declaration, p),
	}, nil
}
