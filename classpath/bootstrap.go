package classpath

import (
	cf "github.com/dhamidi/jtype/classfile"
)

const (
	pub      = cf.AccPublic
	abstract = cf.AccPublic | cf.AccAbstract
	final    = cf.AccPublic | cf.AccFinal | cf.AccSuper
	iface    = cf.AccPublic | cf.AccInterface | cf.AccAbstract
)

// Bootstrap returns a loader holding declarations of the core java.lang and
// java.util types. It stands in for the JDK's module image so that common
// types resolve without a JDK on the classpath.
func Bootstrap() *MemoryLoader {
	return NewMemoryLoader("bootstrap").MustAdd(bootstrapClasses()...)
}

func class(name string, access cf.AccessFlags, super, sig string, interfaces ...string) *cf.Builder {
	return cf.NewBuilder(name).Access(access).Super(super).Signature(sig).Interfaces(interfaces...)
}

func bootstrapClasses() []*cf.Builder {
	var all []*cf.Builder
	add := func(b *cf.Builder) *cf.Builder {
		all = append(all, b)
		return b
	}

	object := add(class("java/lang/Object", pub|cf.AccSuper, "", ""))
	object.Method(pub, "<init>", "()V")
	object.Method(pub, "equals", "(Ljava/lang/Object;)Z").LocalVariables("obj")
	object.Method(pub|cf.AccNative, "hashCode", "()I")
	object.Method(pub, "toString", "()Ljava/lang/String;")
	object.Method(pub|cf.AccFinal|cf.AccNative, "getClass", "()Ljava/lang/Class;").Signature("()Ljava/lang/Class<*>;")

	clazz := add(class("java/lang/Class", final, "java/lang/Object", "<T:Ljava/lang/Object;>Ljava/lang/Object;"))
	clazz.Method(pub, "getName", "()Ljava/lang/String;")

	comparable := add(class("java/lang/Comparable", iface, "java/lang/Object", "<T:Ljava/lang/Object;>Ljava/lang/Object;"))
	comparable.Method(abstract, "compareTo", "(Ljava/lang/Object;)I").Signature("(TT;)I")

	charSequence := add(class("java/lang/CharSequence", iface, "java/lang/Object", ""))
	charSequence.Method(abstract, "length", "()I")

	add(class("java/lang/Runnable", iface, "java/lang/Object", "")).
		Method(abstract, "run", "()V")

	iterable := add(class("java/lang/Iterable", iface, "java/lang/Object", "<T:Ljava/lang/Object;>Ljava/lang/Object;"))
	iterable.Method(abstract, "iterator", "()Ljava/util/Iterator;").Signature("()Ljava/util/Iterator<TT;>;")

	str := add(class("java/lang/String", final, "java/lang/Object",
		"Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/String;>;Ljava/lang/CharSequence;",
		"java/lang/Comparable", "java/lang/CharSequence"))
	str.Field(cf.AccPrivate|cf.AccFinal, "value", "[B")
	str.Method(pub, "<init>", "()V")
	str.Method(pub, "<init>", "(Ljava/lang/String;)V").LocalVariables("original")
	str.Method(pub, "length", "()I")
	str.Method(pub, "isEmpty", "()Z")
	str.Method(pub, "compareTo", "(Ljava/lang/String;)I").LocalVariables("anotherString")
	str.Method(pub|cf.AccBridge|cf.AccSynthetic, "compareTo", "(Ljava/lang/Object;)I")
	str.Method(pub|cf.AccStatic, "valueOf", "(Ljava/lang/Object;)Ljava/lang/String;").LocalVariables("obj")

	number := add(class("java/lang/Number", abstract|cf.AccSuper, "java/lang/Object", ""))
	number.Method(pub, "<init>", "()V")
	number.Method(abstract, "intValue", "()I")
	number.Method(abstract, "longValue", "()J")
	number.Method(abstract, "doubleValue", "()D")

	boxed := func(name, prim, desc string) *cf.Builder {
		internal := "java/lang/" + name
		b := add(class(internal, final, "java/lang/Number",
			"Ljava/lang/Number;Ljava/lang/Comparable<L"+internal+";>;", "java/lang/Comparable"))
		b.Field(pub|cf.AccStatic|cf.AccFinal, "MIN_VALUE", desc)
		b.Field(pub|cf.AccStatic|cf.AccFinal, "MAX_VALUE", desc)
		b.Field(cf.AccPrivate|cf.AccFinal, "value", desc)
		b.Method(pub, "<init>", "("+desc+")V").LocalVariables("value")
		b.Method(pub, prim+"Value", "()"+desc)
		b.Method(pub, "compareTo", "(L"+internal+";)I").LocalVariables("another"+name)
		b.Method(pub|cf.AccBridge|cf.AccSynthetic, "compareTo", "(Ljava/lang/Object;)I")
		b.Method(pub|cf.AccStatic, "valueOf", "("+desc+")L"+internal+";").LocalVariables(prim[:1])
		return b
	}
	boxed("Integer", "int", "I")
	boxed("Long", "long", "J")
	boxed("Double", "double", "D")

	boolean := add(class("java/lang/Boolean", final, "java/lang/Object",
		"Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/Boolean;>;", "java/lang/Comparable"))
	boolean.Field(pub|cf.AccStatic|cf.AccFinal, "TRUE", "Ljava/lang/Boolean;")
	boolean.Field(pub|cf.AccStatic|cf.AccFinal, "FALSE", "Ljava/lang/Boolean;")
	boolean.Method(pub, "booleanValue", "()Z")

	character := add(class("java/lang/Character", final, "java/lang/Object",
		"Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/Character;>;", "java/lang/Comparable"))
	character.Method(pub, "charValue", "()C")

	add(class("java/lang/Void", final, "java/lang/Object", ""))

	enum := add(class("java/lang/Enum", abstract|cf.AccSuper, "java/lang/Object",
		"<E:Ljava/lang/Enum<TE;>;>Ljava/lang/Object;Ljava/lang/Comparable<TE;>;", "java/lang/Comparable"))
	enum.Method(cf.AccProtected, "<init>", "(Ljava/lang/String;I)V").LocalVariables("name", "ordinal")
	enum.Method(pub|cf.AccFinal, "name", "()Ljava/lang/String;")
	enum.Method(pub|cf.AccFinal, "ordinal", "()I")
	enum.Method(pub|cf.AccFinal, "compareTo", "(Ljava/lang/Enum;)I").Signature("(TE;)I").LocalVariables("o")

	iterator := add(class("java/util/Iterator", iface, "java/lang/Object", "<E:Ljava/lang/Object;>Ljava/lang/Object;"))
	iterator.Method(abstract, "hasNext", "()Z")
	iterator.Method(abstract, "next", "()Ljava/lang/Object;").Signature("()TE;")

	collection := add(class("java/util/Collection", iface, "java/lang/Object",
		"<E:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Iterable<TE;>;", "java/lang/Iterable"))
	collection.Method(abstract, "size", "()I")
	collection.Method(abstract, "isEmpty", "()Z")
	collection.Method(abstract, "contains", "(Ljava/lang/Object;)Z")
	collection.Method(abstract, "add", "(Ljava/lang/Object;)Z").Signature("(TE;)Z")

	list := add(class("java/util/List", iface, "java/lang/Object",
		"<E:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Collection<TE;>;", "java/util/Collection"))
	list.Method(abstract, "get", "(I)Ljava/lang/Object;").Signature("(I)TE;")
	list.Method(abstract, "set", "(ILjava/lang/Object;)Ljava/lang/Object;").Signature("(ITE;)TE;")
	list.Method(pub|cf.AccStatic|cf.AccVarargs, "of", "([Ljava/lang/Object;)Ljava/util/List;").
		Signature("<E:Ljava/lang/Object;>([TE;)Ljava/util/List<TE;>;")

	add(class("java/util/Set", iface, "java/lang/Object",
		"<E:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Collection<TE;>;", "java/util/Collection"))

	arrayList := add(class("java/util/ArrayList", pub|cf.AccSuper, "java/lang/Object",
		"<E:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/List<TE;>;", "java/util/List"))
	arrayList.Field(cf.AccPrivate|cf.AccTransient, "elementData", "[Ljava/lang/Object;")
	arrayList.Field(cf.AccPrivate, "size", "I")
	arrayList.Method(pub, "<init>", "()V")
	arrayList.Method(pub, "<init>", "(I)V").LocalVariables("initialCapacity")
	arrayList.Method(pub, "<init>", "(Ljava/util/Collection;)V").Signature("(Ljava/util/Collection<+TE;>;)V").LocalVariables("c")
	arrayList.Method(pub, "get", "(I)Ljava/lang/Object;").Signature("(I)TE;").LocalVariables("index")
	arrayList.Method(pub, "add", "(Ljava/lang/Object;)Z").Signature("(TE;)Z").LocalVariables("e")
	arrayList.Method(pub, "size", "()I")

	mapEntry := cf.AccPublic | cf.AccStatic | cf.AccInterface | cf.AccAbstract
	m := add(class("java/util/Map", iface, "java/lang/Object",
		"<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;").
		InnerClass("java/util/Map$Entry", "java/util/Map", "Entry", mapEntry))
	m.Method(abstract, "size", "()I")
	m.Method(abstract, "get", "(Ljava/lang/Object;)Ljava/lang/Object;").Signature("(Ljava/lang/Object;)TV;")
	m.Method(abstract, "put", "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;").Signature("(TK;TV;)TV;")
	m.Method(abstract, "keySet", "()Ljava/util/Set;").Signature("()Ljava/util/Set<TK;>;")
	m.Method(abstract, "values", "()Ljava/util/Collection;").Signature("()Ljava/util/Collection<TV;>;")
	m.Method(abstract, "entrySet", "()Ljava/util/Set;").Signature("()Ljava/util/Set<Ljava/util/Map$Entry<TK;TV;>;>;")

	entry := add(class("java/util/Map$Entry", iface, "java/lang/Object",
		"<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;").
		InnerClass("java/util/Map$Entry", "java/util/Map", "Entry", mapEntry))
	entry.Method(abstract, "getKey", "()Ljava/lang/Object;").Signature("()TK;")
	entry.Method(abstract, "getValue", "()Ljava/lang/Object;").Signature("()TV;")

	hashMap := add(class("java/util/HashMap", pub|cf.AccSuper, "java/lang/Object",
		"<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Map<TK;TV;>;", "java/util/Map"))
	hashMap.Method(pub, "<init>", "()V")
	hashMap.Method(pub, "<init>", "(Ljava/util/Map;)V").Signature("(Ljava/util/Map<+TK;+TV;>;)V").LocalVariables("m")
	hashMap.Method(pub, "get", "(Ljava/lang/Object;)Ljava/lang/Object;").Signature("(Ljava/lang/Object;)TV;").LocalVariables("key")
	hashMap.Method(pub, "put", "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;").Signature("(TK;TV;)TV;").LocalVariables("key", "value")
	hashMap.Method(pub, "size", "()I")

	optional := add(class("java/util/Optional", final, "java/lang/Object", "<T:Ljava/lang/Object;>Ljava/lang/Object;"))
	optional.Field(cf.AccPrivate|cf.AccFinal, "value", "Ljava/lang/Object;").Signature("TT;")
	optional.Method(pub|cf.AccStatic, "empty", "()Ljava/util/Optional;").Signature("<T:Ljava/lang/Object;>()Ljava/util/Optional<TT;>;")
	optional.Method(pub|cf.AccStatic, "of", "(Ljava/lang/Object;)Ljava/util/Optional;").Signature("<T:Ljava/lang/Object;>(TT;)Ljava/util/Optional<TT;>;").LocalVariables("value")
	optional.Method(pub, "get", "()Ljava/lang/Object;").Signature("()TT;")
	optional.Method(pub, "isPresent", "()Z")
	optional.Method(pub, "orElse", "(Ljava/lang/Object;)Ljava/lang/Object;").Signature("(TT;)TT;").LocalVariables("other")

	function := add(class("java/util/function/Function", iface, "java/lang/Object",
		"<T:Ljava/lang/Object;R:Ljava/lang/Object;>Ljava/lang/Object;"))
	function.Method(abstract, "apply", "(Ljava/lang/Object;)Ljava/lang/Object;").Signature("(TT;)TR;")
	function.Method(pub, "andThen", "(Ljava/util/function/Function;)Ljava/util/function/Function;").
		Signature("<V:Ljava/lang/Object;>(Ljava/util/function/Function<-TR;+TV;>;)Ljava/util/function/Function<TT;TV;>;")

	add(class("java/util/function/Supplier", iface, "java/lang/Object", "<T:Ljava/lang/Object;>Ljava/lang/Object;")).
		Method(abstract, "get", "()Ljava/lang/Object;").Signature("()TT;")

	return all
}
